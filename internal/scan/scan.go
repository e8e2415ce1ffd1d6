// Package scan runs a keyword search over every PDF under a directory tree.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jonathan/pdf-scanner/internal/discovery"
	"github.com/jonathan/pdf-scanner/internal/errlog"
	"github.com/jonathan/pdf-scanner/internal/extract"
	"github.com/jonathan/pdf-scanner/internal/matcher"
	"github.com/jonathan/pdf-scanner/internal/progress"
	"github.com/jonathan/pdf-scanner/internal/types"
	"github.com/jonathan/pdf-scanner/internal/workpool"
)

// Options holds configuration for one scan run
type Options struct {
	// FS holds the tree being searched.
	FS billy.Filesystem
	// OutFS receives the match list and error log. Defaults to FS.
	OutFS billy.Filesystem

	Root       string
	Term       string
	OutputFile string
	ErrorLog   string

	MaxWorkers     int
	ChunkSize      int
	ReportInterval int

	// Out receives console output. Defaults to io.Discard.
	Out io.Writer
}

// Settings returns the options in their reportable form.
func (o Options) Settings() types.ScanSettings {
	return types.ScanSettings{
		Root:           o.Root,
		Term:           o.Term,
		OutputFile:     o.OutputFile,
		ErrorLog:       o.ErrorLog,
		MaxWorkers:     o.MaxWorkers,
		ReportInterval: o.ReportInterval,
		ChunkSize:      o.ChunkSize,
	}
}

// Summary is the outcome of a completed run
type Summary struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Settings  types.ScanSettings

	TotalFiles   int
	Processed    int
	Matches      []string
	FileErrors   int
	FailedChunks int
	Elapsed      time.Duration
}

// FilesPerSecond returns the average throughput over the whole run.
func (s *Summary) FilesPerSecond() float64 {
	return progress.Rate(s.TotalFiles, s.Elapsed)
}

// Report converts the summary into the JSON run report.
func (s *Summary) Report() *types.ScanReport {
	return &types.ScanReport{
		RunID:          s.RunID,
		StartedAt:      s.StartedAt,
		Settings:       s.Settings,
		TotalFiles:     s.TotalFiles,
		Matches:        s.Matches,
		FileErrors:     s.FileErrors,
		FailedChunks:   s.FailedChunks,
		ElapsedSeconds: s.Elapsed.Seconds(),
		FilesPerSecond: s.FilesPerSecond(),
	}
}

// Scanner wires enumeration, matching, and the worker pool together.
type Scanner struct {
	opener extract.Opener
	logger *zap.Logger
	now    func() time.Time
}

// New returns a Scanner. A nil opener uses the PDF library; a nil logger
// discards diagnostics.
func New(opener extract.Opener, logger *zap.Logger) *Scanner {
	if opener == nil {
		opener = extract.NewPDFOpener()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{opener: opener, logger: logger, now: time.Now}
}

// Run performs one scan. Per-file failures go to the error log and failed
// chunks are reported on the console; neither stops the run. Problems with
// the root directory or the output files are returned as errors.
//
//nolint:errcheck // console output is best effort
func (s *Scanner) Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.FS == nil {
		return nil, errors.New("scan: no input filesystem")
	}
	if opts.OutFS == nil {
		opts.OutFS = opts.FS
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	numbers := message.NewPrinter(language.English)
	summary := &Summary{
		RunID:     uuid.New(),
		StartedAt: s.now(),
		Settings:  opts.Settings(),
	}
	log := s.logger.With(zap.String("run_id", summary.RunID.String()))

	fmt.Fprintf(opts.Out, "Starting search for '%s' in %s\n", strings.ToLower(opts.Term), opts.Root)

	if err := util.WriteFile(opts.OutFS, opts.OutputFile, nil, 0o644); err != nil {
		return nil, &OutputError{Path: opts.OutputFile, Op: "truncate", Cause: err}
	}
	sink, err := errlog.Create(opts.OutFS, opts.ErrorLog)
	if err != nil {
		return nil, &OutputError{Path: opts.ErrorLog, Op: "create", Cause: err}
	}

	files, err := discovery.Enumerate(opts.FS, opts.Root)
	if err != nil {
		_ = sink.Close()
		return nil, err
	}
	summary.TotalFiles = len(files)
	numbers.Fprintf(opts.Out, "Found %d PDF files to process\n", len(files))
	log.Debug("enumerated files", zap.String("root", opts.Root), zap.Int("files", len(files)))

	m := matcher.New(s.opener, opts.FS, opts.Term, sink)
	chunks := workpool.Chunk(files, opts.ChunkSize)
	pool := workpool.New[[]string, []string](opts.MaxWorkers)
	reporter := progress.New(opts.Out, len(files), opts.ReportInterval)

	log.Debug("dispatching chunks",
		zap.Int("chunks", len(chunks)),
		zap.Int("workers", pool.Workers()))

	for res := range pool.Run(ctx, chunks, m.MatchChunk) {
		if res.Err != nil {
			summary.FailedChunks++
			fmt.Fprintf(opts.Out, "\nError processing batch: %v\n", res.Err)
			log.Warn("chunk failed",
				zap.Int("chunk", res.Index),
				zap.Int("files", len(res.Task)),
				zap.Error(res.Err))
			continue
		}
		// Only completed chunks count as processed; a failed chunk's files
		// never reach the counter.
		summary.Matches = append(summary.Matches, res.Value...)
		reporter.Advance(len(res.Task), len(summary.Matches))
	}
	summary.Processed = reporter.Processed()

	closeErr := sink.Close()
	summary.FileErrors = sink.Count()
	if closeErr != nil {
		return nil, &OutputError{Path: opts.ErrorLog, Op: "write", Cause: closeErr}
	}

	if err := util.WriteFile(opts.OutFS, opts.OutputFile, []byte(strings.Join(summary.Matches, "\n")), 0o644); err != nil {
		return nil, &OutputError{Path: opts.OutputFile, Op: "write", Cause: err}
	}

	summary.Elapsed = s.now().Sub(summary.StartedAt)
	log.Debug("scan finished",
		zap.Int("matches", len(summary.Matches)),
		zap.Int("file_errors", summary.FileErrors),
		zap.Int("failed_chunks", summary.FailedChunks),
		zap.Duration("elapsed", summary.Elapsed))

	fmt.Fprintf(opts.Out, "\n\nProcessing complete in %.1f seconds\n", summary.Elapsed.Seconds())
	numbers.Fprintf(opts.Out, "Total matches found: %d\n", len(summary.Matches))
	fmt.Fprintf(opts.Out, "Results saved to: %s\n", opts.OutputFile)
	fmt.Fprintf(opts.Out, "Errors logged to: %s\n", opts.ErrorLog)
	fmt.Fprintf(opts.Out, "Average speed: %.1f files/sec\n", summary.FilesPerSecond())

	return summary, nil
}

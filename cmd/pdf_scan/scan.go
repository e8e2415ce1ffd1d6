package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/pdf-scanner/internal/config"
	"github.com/jonathan/pdf-scanner/internal/discovery"
	"github.com/jonathan/pdf-scanner/internal/observability"
	"github.com/jonathan/pdf-scanner/internal/scan"
)

const (
	envRoot = "PDF_SCAN_ROOT"
	envTerm = "PDF_SCAN_TERM"
)

var scanCommand = &cobra.Command{
	Use:   "scan",
	Short: "Scan a directory tree for PDFs containing a keyword",
	Long: `Recursively finds every .pdf file under --root, searches each page's text for --term, and writes the matching paths to --out. Files that cannot be read are listed in --log and skipped.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values; PDF_SCAN_ROOT and PDF_SCAN_TERM fill in a missing root or term.`,
	RunE: runScanCmd,
}

var (
	scanConfigPath string
	scanRoot       string
	scanTerm       string
	scanOut        string
	scanLog        string
	scanReport     string
	scanWorkers    int
	scanInterval   int
	scanChunkSize  int
	scanVerbose    bool
)

func init() {
	// Config file flag (processed first)
	scanCommand.Flags().StringVar(&scanConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	scanCommand.Flags().StringVarP(&scanRoot, "root", "r", "", "Directory to scan recursively")
	scanCommand.Flags().StringVarP(&scanTerm, "term", "t", "", "Keyword to search for (case-insensitive)")
	scanCommand.Flags().StringVarP(&scanOut, "out", "o", config.DefaultOutputFile, "File that receives matching paths")
	scanCommand.Flags().StringVar(&scanLog, "log", config.DefaultErrorLog, "File that receives per-file errors")
	scanCommand.Flags().StringVar(&scanReport, "report", "", "Write a JSON run report to this path (optional)")
	scanCommand.Flags().IntVarP(&scanWorkers, "workers", "w", config.DefaultWorkers(), "Maximum concurrent workers")
	scanCommand.Flags().IntVar(&scanInterval, "interval", config.DefaultReportInterval, "Print progress every N processed files")
	scanCommand.Flags().IntVar(&scanChunkSize, "chunk-size", config.DefaultChunkSize, "Files per unit of work")
	scanCommand.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(scanCommand)
}

func runScanCmd(cmd *cobra.Command, _ []string) error {
	// Step 1: Load config file if provided
	var cfg config.Config
	if scanConfigPath != "" {
		loadedCfg, err := config.LoadConfig(scanConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides, only for flags that were explicitly set
	if cmd.Flags().Changed("root") {
		cfg.Root = scanRoot
	}
	if cmd.Flags().Changed("term") {
		cfg.Term = scanTerm
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputFile = scanOut
	}
	if cmd.Flags().Changed("log") {
		cfg.ErrorLog = scanLog
	}
	if cmd.Flags().Changed("report") {
		cfg.ReportFile = scanReport
	}
	if cmd.Flags().Changed("workers") {
		cfg.MaxWorkers = scanWorkers
	}
	if cmd.Flags().Changed("interval") {
		cfg.ReportInterval = scanInterval
	}
	if cmd.Flags().Changed("chunk-size") {
		cfg.ChunkSize = scanChunkSize
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = scanVerbose
	}

	// Step 3: Environment fallbacks, then defaults
	applyEnvFallbacks(&cfg)
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.CheckRequired(); err != nil {
		return err
	}
	if err := resolvePaths(&cfg); err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fsys := osfs.New("")
	opts := scan.Options{
		FS:             fsys,
		Root:           cfg.Root,
		Term:           cfg.Term,
		OutputFile:     cfg.OutputFile,
		ErrorLog:       cfg.ErrorLog,
		MaxWorkers:     cfg.MaxWorkers,
		ChunkSize:      cfg.ChunkSize,
		ReportInterval: cfg.ReportInterval,
		Out:            cmd.OutOrStdout(),
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if cfg.Verbose {
		printer.PrintScanSettings(opts.Settings())
	}

	summary, err := scan.New(nil, logger).Run(ctx, opts)
	if err != nil {
		var enumErr *discovery.EnumerationError
		var outErr *scan.OutputError
		if errors.As(err, &enumErr) || errors.As(err, &outErr) {
			return fmt.Errorf("scan failed: %w", err)
		}
		return fmt.Errorf("failed to run scan: %w", err)
	}

	report := summary.Report()
	if cfg.Verbose {
		printer.PrintScanReport(report)
	}

	if cfg.ReportFile != "" {
		if err := scan.WriteReport(fsys, cfg.ReportFile, report, logger); err != nil {
			return err
		}
		logger.Debug("wrote scan report", zap.String("path", cfg.ReportFile))
	}

	return nil
}

// applyEnvFallbacks fills a missing root or term from the environment.
func applyEnvFallbacks(cfg *config.Config) {
	if cfg.Root == "" {
		cfg.Root = os.Getenv(envRoot)
	}
	if cfg.Term == "" {
		cfg.Term = os.Getenv(envTerm)
	}
}

// resolvePaths rewrites paths that climb above the working directory as
// absolute paths; the OS filesystem rejects "../" prefixes. Other paths are
// kept as given so reported matches keep the form the user typed.
func resolvePaths(cfg *config.Config) error {
	for _, p := range []*string{&cfg.Root, &cfg.OutputFile, &cfg.ErrorLog, &cfg.ReportFile} {
		if *p == "" || !climbsAbove(*p) {
			continue
		}
		abs, err := filepath.Abs(*p)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", *p, err)
		}
		*p = abs
	}
	return nil
}

// climbsAbove reports whether a relative path starts outside the working directory.
func climbsAbove(path string) bool {
	clean := filepath.Clean(path)
	return clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator))
}

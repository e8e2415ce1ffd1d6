// Package progress prints periodic throughput lines during a scan.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Reporter counts processed files and prints a status line each time the
// count lands on a multiple of the interval. Counts that jump past a
// multiple print nothing; reporting is best effort.
type Reporter struct {
	out      io.Writer
	printer  *message.Printer
	total    int
	interval int
	start    time.Time
	now      func() time.Time

	mu        sync.Mutex
	processed int
	matches   int
	lines     int
}

// New returns a Reporter for total files that prints every interval files.
// An interval below 1 disables progress lines.
func New(out io.Writer, total, interval int) *Reporter {
	return &Reporter{
		out:      out,
		printer:  message.NewPrinter(language.English),
		total:    total,
		interval: interval,
		start:    time.Now(),
		now:      time.Now,
	}
}

// Advance adds n processed files and records the running match count.
func (r *Reporter) Advance(n, matches int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.processed += n
	r.matches = matches

	if r.interval < 1 || r.processed%r.interval != 0 {
		return
	}

	// Only the file counts are grouped; rate and matches print plainly.
	//nolint:errcheck // progress output is best effort
	fmt.Fprintf(r.out, "\rProcessed %s/%s files | %.1f files/sec | Matches: %d",
		r.printer.Sprintf("%d", r.processed), r.printer.Sprintf("%d", r.total),
		Rate(r.processed, r.now().Sub(r.start)), r.matches)
	r.lines++
}

// Processed returns the running processed count.
func (r *Reporter) Processed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.processed
}

// Rate returns files per second, or 0 when no time has passed.
func Rate(files int, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(files) / secs
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jonathan/pdf-scanner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out     io.Writer
	numbers *message.Printer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, numbers: message.NewPrinter(language.English)}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines, keeping the tail where file names live
		if n := len([]rune(line)); n > boxWidth-4 {
			line = "..." + string([]rune(line)[n-(boxWidth-7):])
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScanSettings outputs the effective settings of a scan before it starts.
func (p *Printer) PrintScanSettings(settings types.ScanSettings) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Root:        %s\n", settings.Root))
	sb.WriteString(fmt.Sprintf("Term:        %q\n", settings.Term))
	sb.WriteString(fmt.Sprintf("Output:      %s\n", settings.OutputFile))
	sb.WriteString(fmt.Sprintf("Error log:   %s\n", settings.ErrorLog))
	sb.WriteString(fmt.Sprintf("Workers:     %d\n", settings.MaxWorkers))
	sb.WriteString(fmt.Sprintf("Chunk size:  %d\n", settings.ChunkSize))
	sb.WriteString(p.numbers.Sprintf("Interval:    %d files", settings.ReportInterval))

	p.printBox("SCAN SETTINGS", sb.String())
}

// PrintScanReport outputs the totals of a finished scan and the first few matches.
func (p *Printer) PrintScanReport(report *types.ScanReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:         %s\n", report.RunID))
	sb.WriteString(p.numbers.Sprintf("Files:       %d\n", report.TotalFiles))
	sb.WriteString(p.numbers.Sprintf("Matches:     %d\n", len(report.Matches)))
	sb.WriteString(p.numbers.Sprintf("File errors: %d\n", report.FileErrors))
	sb.WriteString(p.numbers.Sprintf("Lost chunks: %d\n", report.FailedChunks))
	sb.WriteString(fmt.Sprintf("Elapsed:     %.1fs\n", report.ElapsedSeconds))

	if len(report.Matches) > 0 {
		sb.WriteString("\nMatches:\n")
		count := min(len(report.Matches), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", report.Matches[i]))
		}
		if len(report.Matches) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Matches)-maxItemsToShow))
		}
	}

	p.printBox("SCAN REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

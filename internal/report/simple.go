package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/casecrawl/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
type SimpleWriter struct {
	baseWriter

	// verbose adds the per-year breakdown.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the per-year breakdown.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(summary *model.Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeTotals(&sb, summary)
	if w.verbose {
		w.writeYears(&sb, summary)
	}
	w.writeFooter(&sb, summary)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run range and status.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("                    CASECRAWL RUN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Years:          %d to %d\n", summary.StartYear, summary.EndYear)
	fmt.Fprintf(sb, "Started:        %s\n", summary.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Duration:       %s\n", summary.Duration.Round(time.Second))
	fmt.Fprintf(sb, "Status:         %s\n", statusText(summary))
	sb.WriteString("\n")
}

// writeTotals writes the run totals.
func (w *SimpleWriter) writeTotals(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString("TOTALS\n")
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  Cases saved:      %d\n", summary.TotalCases)
	fmt.Fprintf(sb, "  Listing pages:    %d\n", summary.TotalPages)
	fmt.Fprintf(sb, "  Dropped cases:    %d\n", summary.DroppedCases)
	fmt.Fprintf(sb, "  Skipped cards:    %d\n", summary.SkippedCards)
	sb.WriteString("\n")
}

// writeYears writes one line per year.
func (w *SimpleWriter) writeYears(sb *strings.Builder, summary *model.Summary) {
	if len(summary.Years) == 0 {
		return
	}
	sb.WriteString("BY YEAR\n")
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	for _, y := range summary.Years {
		fmt.Fprintf(sb, "  %d: %d cases, %d pages, %d dropped, %d skipped\n",
			y.Year, y.Cases, y.Pages, y.DroppedCases, y.SkippedCards)
	}
	sb.WriteString("\n")
}

// writeFooter writes where the dataset went.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, summary *model.Summary) {
	if summary.OutputPath != "" {
		fmt.Fprintf(sb, "Saved all cases to %s\n", summary.OutputPath)
	}
	if summary.Archived {
		sb.WriteString("Run archived.\n")
	}
}

package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/casecrawl/internal/model"
)

// MarkdownWriter outputs summaries in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeYears(md, summary)
	w.writeAlert(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.Summary) {
	md.H1("Crawl Summary")
	md.PlainText("")

	output := "-"
	if summary.OutputPath != "" {
		output = "`" + summary.OutputPath + "`"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Years", strconv.Itoa(summary.StartYear) + " to " + strconv.Itoa(summary.EndYear)},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", summary.Duration.Round(time.Second).String()},
			{"Cases Saved", strconv.Itoa(summary.TotalCases)},
			{"Listing Pages", strconv.Itoa(summary.TotalPages)},
			{"Dropped Cases", strconv.Itoa(summary.DroppedCases)},
			{"Skipped Cards", strconv.Itoa(summary.SkippedCards)},
			{"Output", output},
			{"Status", statusText(summary)},
		},
	})
	md.PlainText("")
}

// writeYears writes the per-year table and the case distribution chart.
func (w *MarkdownWriter) writeYears(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Cases by Year")
	md.PlainText("")

	if len(summary.Years) == 0 {
		md.PlainText("No years were crawled.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(summary.Years))
	for _, y := range summary.Years {
		rows = append(rows, []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.Cases),
			strconv.Itoa(y.Pages),
			strconv.Itoa(y.Cards),
			strconv.Itoa(y.DroppedCases),
			strconv.Itoa(y.SkippedCards),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Year", "Cases", "Pages", "Cards", "Dropped", "Skipped"},
		Rows:   rows,
	})
	md.PlainText("")

	if summary.TotalCases > 0 {
		w.writePieChart(md, summary)
	}
}

// writePieChart writes a mermaid pie chart of cases per year.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Cases per Year"),
		piechart.WithShowData(true),
	)
	for _, y := range summary.Years {
		if y.Cases > 0 {
			chart.LabelAndIntValue(strconv.Itoa(y.Year), uint64(y.Cases))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert describing the run outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.Summary) {
	switch {
	case !summary.Succeeded():
		md.Cautionf("The run failed: %s", summary.Error)
	case summary.DroppedCases > 0:
		md.Warningf("%d case(s) were dropped because their judgment page could not be fetched.", summary.DroppedCases)
	case summary.TotalCases == 0:
		md.Note("No cases were found in the requested years.")
	default:
		md.Tip("All listed cases were saved.")
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Summary generated by [casecrawl](https://github.com/nao1215/casecrawl)*")
}

package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/hjangles/llscan/internal/model"
)

// MarkdownWriter outputs summaries in GitHub-flavored Markdown, built with
// nao1215/markdown.
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
func (w *MarkdownWriter) Write(summary *model.ScanSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeInputs(md, summary)
	w.writeCurves(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run table and the point distribution.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.ScanSummary) {
	md.H1("Likelihood Scan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Scan Date", summary.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Input Files", strconv.Itoa(len(summary.Inputs))},
			{"Mass Ranges", strconv.Itoa(len(summary.Curves))},
			{"Points", strconv.Itoa(summary.PointCount())},
			{"Plotted", strconv.Itoa(summary.PlottedCount())},
			{"Threshold", formatValue(summary.Threshold)},
			{"Output", "`" + summary.Output + "`"},
			{"Digest", "`" + summary.Digest + "`"},
		},
	})
	md.PlainText("")

	if len(summary.Curves) > 1 {
		w.writePieChart(md, summary)
	}
}

// writePieChart writes a mermaid pie chart of points per mass range.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.ScanSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Points per Mass Range"),
		piechart.WithShowData(true),
	)
	for _, c := range summary.Curves {
		chart.LabelAndIntValue(c.Range.String(), uint64(len(c.Points)))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeInputs lists the input files.
func (w *MarkdownWriter) writeInputs(md *markdown.Markdown, summary *model.ScanSummary) {
	md.H2("Input Files")
	md.PlainText("")
	if len(summary.Inputs) == 0 {
		md.PlainText("No input files.")
		md.PlainText("")
		return
	}
	md.BulletList(summary.Inputs...)
	md.PlainText("")
}

// writeCurves writes one table per mass range with an alert when points
// were left out of the plot.
func (w *MarkdownWriter) writeCurves(md *markdown.Markdown, summary *model.ScanSummary) {
	md.H2("Mass Ranges")
	md.PlainText("")

	for _, c := range summary.Curves {
		md.H3(c.Range.Title())
		md.PlainText("")
		md.PlainTextf("Baseline `L_0 = %.5E`", c.Baseline)
		md.PlainText("")

		rows := make([][]string, len(c.Points))
		for i, p := range c.Points {
			plotted := "yes"
			if !p.Plotted {
				plotted = "no"
			}
			rows[i] = []string{formatValue(p.Phi), formatValue(p.Delta), plotted}
		}
		md.Table(markdown.TableSet{
			Header: []string{"phi", "Delta L", "Plotted"},
			Rows:   rows,
		})
		md.PlainText("")

		if n := c.Excluded(); n > 0 {
			md.Notef("%d point(s) at or above the threshold %s are not plotted.", n, formatValue(c.Threshold))
		} else {
			md.Tip("All points are plotted.")
		}
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by llscan*")
}

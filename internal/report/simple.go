package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hjangles/llscan/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose lists every point instead of only the curve totals.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with every point listed.
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
func (w *SimpleWriter) Write(summary *model.ScanSummary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeCurves(&sb, summary)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.ScanSummary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      LIKELIHOOD SCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Scan Date:    %s\n", summary.DateScanned.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Input Files:  %d\n", len(summary.Inputs))
	fmt.Fprintf(sb, "Mass Ranges:  %d\n", len(summary.Curves))
	fmt.Fprintf(sb, "Points:       %d (%d plotted)\n", summary.PointCount(), summary.PlottedCount())
	fmt.Fprintf(sb, "Threshold:    %s\n", formatValue(summary.Threshold))
	fmt.Fprintf(sb, "Output:       %s\n", summary.Output)
	fmt.Fprintf(sb, "Digest:       %s\n", summary.Digest)
	sb.WriteString("\n")
}

// writeCurves writes one section per mass range.
func (w *SimpleWriter) writeCurves(sb *strings.Builder, summary *model.ScanSummary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("MASS RANGES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(summary.Curves) == 0 {
		sb.WriteString("  No mass ranges\n\n")
		return
	}

	for _, c := range summary.Curves {
		fmt.Fprintf(sb, "[%s] baseline L_0 = %.5E\n", c.Range, c.Baseline)
		fmt.Fprintf(sb, "  %d point(s), %d plotted, %d excluded\n",
			len(c.Points), len(c.Plotted()), c.Excluded())

		if w.verbose {
			for _, p := range c.Points {
				marker := "+"
				if !p.Plotted {
					marker = "x"
				}
				fmt.Fprintf(sb, "  %s phi=%-12s delta=%s\n", marker, formatValue(p.Phi), formatValue(p.Delta))
			}
		}
		sb.WriteString("\n")
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

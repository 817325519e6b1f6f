package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/hjangles/llscan/internal/model"
)

// JSONWriter writes a summary as one JSON document for other tools.
// Output is compact unless an indentation option is given.
type JSONWriter struct {
	baseWriter
	prefix  string
	indent  string
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent indents nested values with indent and starts every line after
// the first with prefix.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.prefix = prefix
		w.indent = indent
	}
}

// WithPrettyPrint indents with two spaces.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion records the llscan version in the document.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// RangeTotals counts the points of one mass range.
type RangeTotals struct {
	Range    model.MassRange `json:"range"`
	Baseline float64         `json:"baseline"`
	Points   int             `json:"points"`
	Plotted  int             `json:"plotted"`
}

// JSONReport is the document written by JSONWriter.
type JSONReport struct {
	Version string        `json:"version,omitempty"`
	Points  int           `json:"points"`
	Plotted int           `json:"plotted"`
	Ranges  []RangeTotals `json:"ranges"`

	Summary *model.ScanSummary `json:"summary"`
}

// NewJSONReport builds the document for summary.
func NewJSONReport(summary *model.ScanSummary, version string) *JSONReport {
	ranges := make([]RangeTotals, 0, len(summary.Curves))
	for _, c := range summary.Curves {
		ranges = append(ranges, RangeTotals{
			Range:    c.Range,
			Baseline: c.Baseline,
			Points:   len(c.Points),
			Plotted:  len(c.Plotted()),
		})
	}
	return &JSONReport{
		Version: version,
		Points:  summary.PointCount(),
		Plotted: summary.PlottedCount(),
		Ranges:  ranges,
		Summary: summary,
	}
}

// Write encodes the summary followed by a newline.
func (w *JSONWriter) Write(summary *model.ScanSummary) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.prefix != "" || w.indent != "" {
		enc.SetIndent(w.prefix, w.indent)
	}
	if err := enc.Encode(NewJSONReport(summary, w.version)); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

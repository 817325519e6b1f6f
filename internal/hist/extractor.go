package hist

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go-hep.org/x/hep/hbook"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hjangles/llscan/internal/model"
	"github.com/hjangles/llscan/internal/rootfile"
)

// Result is what one extraction produced.
type Result struct {
	// Entries is the number of entries of the input tree.
	Entries int64

	// Histogram is the filled histogram as written to the output file.
	Histogram *hbook.H1D

	// Spec is the histogram description the extraction used.
	Spec model.HistogramSpec
}

// Extractor reads one tree branch, bins a derived quantity and writes the
// histogram to a new file.
type Extractor struct {
	opener  rootfile.TreeOpener
	writer  rootfile.HistogramWriter
	out     io.Writer
	printer *message.Printer
	logger  *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithOpener replaces the tree opener.
func WithOpener(opener rootfile.TreeOpener) Option {
	return func(e *Extractor) {
		e.opener = opener
	}
}

// WithWriter replaces the histogram writer.
func WithWriter(writer rootfile.HistogramWriter) Option {
	return func(e *Extractor) {
		e.writer = writer
	}
}

// WithOutput sets where the entry count is printed.
func WithOutput(w io.Writer) Option {
	return func(e *Extractor) {
		e.out = w
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an extractor backed by groot that prints to io.Discard
// unless WithOutput is given.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		opener:  rootfile.GrootTreeOpener{},
		writer:  rootfile.GrootWriter{},
		out:     io.Discard,
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// FormatCount groups the digits of n by thousands, e.g. 1234 -> "1,234".
func FormatCount(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// Extract opens spec.Tree in input, prints its entry count, fills the
// histogram with the expression evaluated on every entry and writes it to
// output under spec.Name. Output is only created once the input was read.
func (e *Extractor) Extract(ctx context.Context, input, output string, spec model.HistogramSpec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	expr, err := model.ParseExpression(spec.Expression)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()

	tree, err := e.opener.OpenTree(input, spec.Tree)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	entries := tree.Entries()
	if _, err := e.printer.Fprintf(e.out, "%d\n", entries); err != nil {
		return nil, fmt.Errorf("failed to print entry count: %w", err)
	}

	h := hbook.NewH1D(spec.Bins, spec.Min, spec.Max)
	err = tree.Each(ctx, expr.Branch, func(v float64) error {
		h.Fill(expr.Eval(v), 1)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from %s: %w", expr.Branch, input, err)
	}

	if err := e.writer.WriteH1D(output, spec.Name, h); err != nil {
		return nil, err
	}

	e.logger.Debug("histogram written",
		"input", input,
		"output", output,
		"name", spec.Name,
		"entries", entries,
		"duration", time.Since(startTime),
	)

	return &Result{
		Entries:   entries,
		Histogram: h,
		Spec:      spec,
	}, nil
}

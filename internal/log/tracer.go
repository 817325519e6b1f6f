package log

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hjangles/llscan/internal/model"
)

// Tracer prints the diagnostic trace of a scan run: every input path, every
// object name and, per mass range, every phi with its adjusted value.
// It is not a log; it writes plain lines to stdout.
type Tracer struct {
	w io.Writer
}

// NewTracer creates a tracer writing to w. A nil w discards the trace.
func NewTracer(w io.Writer) *Tracer {
	if w == nil {
		w = io.Discard
	}
	return &Tracer{w: w}
}

// Input traces one input path.
func (t *Tracer) Input(path string) {
	fmt.Fprintln(t.w, path)
}

// Object traces one stored object name.
func (t *Tracer) Object(name string) {
	fmt.Fprintln(t.w, name)
}

// Curve traces a processed mass range. Every point is printed, including
// those at or above the threshold.
func (t *Tracer) Curve(c model.Curve) {
	fmt.Fprintf(t.w, "hj_mass: %s\n", c.Range)
	for _, p := range c.Points {
		fmt.Fprintf(t.w, "%s: %s\n", FormatNumber(p.Phi), FormatNumber(p.Delta))
	}
}

// FormatNumber prints v in its shortest form, keeping a ".0" on integral
// values so that 0 prints as "0.0".
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}

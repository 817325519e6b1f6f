package model

import (
	"errors"
	"math"
	"testing"
)

// TestParseExpression tests the derived-quantity parser.
func TestParseExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr   string
		branch string
		input  float64
		want   float64
	}{
		{expr: "abs(cos_theta)", branch: "cos_theta", input: -0.25, want: 0.25},
		{expr: " abs( cos_theta ) ", branch: "cos_theta", input: 0.5, want: 0.5},
		{expr: "cos_theta", branch: "cos_theta", input: -0.25, want: -0.25},
		{expr: "sq(x)", branch: "x", input: 3, want: 9},
		{expr: "neg(x)", branch: "x", input: 3, want: -3},
		{expr: "sqrt(x)", branch: "x", input: 16, want: 4},
		{expr: "cos(phi)", branch: "phi", input: 0, want: 1},
		{expr: "sin(phi)", branch: "phi", input: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			e, err := ParseExpression(tt.expr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Branch != tt.branch {
				t.Errorf("expected branch %q, got %q", tt.branch, e.Branch)
			}
			if got := e.Eval(tt.input); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	for _, bad := range []string{"", "abs(", "log(x)", "abs(x)+1", "abs(1x)", "abs(abs(x))"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseExpression(bad); !errors.Is(err, ErrInvalidExpression) {
				t.Errorf("expected ErrInvalidExpression, got %v", err)
			}
		})
	}
}

// TestHistogramSpecValidate tests histogram shape validation.
func TestHistogramSpecValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		spec := DefaultHistogramSpec()
		if err := spec.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if spec.Name != "h_cos_theta" || spec.Bins != 50 || spec.Min != 0 || spec.Max != 1 || spec.Tree != "angles" {
			t.Errorf("unexpected defaults: %+v", spec)
		}
	})

	t.Run("zero bins", func(t *testing.T) {
		t.Parallel()
		spec := DefaultHistogramSpec()
		spec.Bins = 0
		if err := spec.Validate(); !errors.Is(err, ErrInvalidBins) {
			t.Errorf("expected ErrInvalidBins, got %v", err)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		t.Parallel()
		spec := DefaultHistogramSpec()
		spec.Min, spec.Max = 1, 0
		if err := spec.Validate(); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("expected ErrInvalidRange, got %v", err)
		}
	})

	t.Run("bad expression", func(t *testing.T) {
		t.Parallel()
		spec := DefaultHistogramSpec()
		spec.Expression = "log(x)"
		if err := spec.Validate(); !errors.Is(err, ErrInvalidExpression) {
			t.Errorf("expected ErrInvalidExpression, got %v", err)
		}
	})
}

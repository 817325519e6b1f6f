package model

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Histogram extractor defaults.
const (
	DefaultHistogramName = "h_cos_theta"
	DefaultHistogramBins = 50
	DefaultHistogramMin  = 0.0
	DefaultHistogramMax  = 1.0
	DefaultTreeName      = "angles"
	DefaultExpression    = "abs(cos_theta)"
)

var (
	// ErrInvalidBins is returned when a histogram has no bins.
	ErrInvalidBins = errors.New("histogram bin count must be positive")
	// ErrInvalidRange is returned when a histogram lower bound is not below its upper bound.
	ErrInvalidRange = errors.New("histogram lower bound must be below upper bound")
)

// HistogramSpec describes the one histogram the extractor produces.
type HistogramSpec struct {
	Name       string  `json:"name" yaml:"name"`
	Bins       int     `json:"bins" yaml:"bins"`
	Min        float64 `json:"min" yaml:"min"`
	Max        float64 `json:"max" yaml:"max"`
	Tree       string  `json:"tree" yaml:"tree"`
	Expression string  `json:"expression" yaml:"expression"`
}

// DefaultHistogramSpec returns the abs(cos_theta) histogram of the angles tree.
func DefaultHistogramSpec() HistogramSpec {
	return HistogramSpec{
		Name:       DefaultHistogramName,
		Bins:       DefaultHistogramBins,
		Min:        DefaultHistogramMin,
		Max:        DefaultHistogramMax,
		Tree:       DefaultTreeName,
		Expression: DefaultExpression,
	}
}

// Validate checks the histogram shape and parses the expression.
func (s HistogramSpec) Validate() error {
	if s.Bins <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBins, s.Bins)
	}
	if !(s.Min < s.Max) {
		return fmt.Errorf("%w: [%g,%g]", ErrInvalidRange, s.Min, s.Max)
	}
	if strings.TrimSpace(s.Tree) == "" {
		return errors.New("tree name is empty")
	}
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("histogram name is empty")
	}
	_, err := ParseExpression(s.Expression)
	return err
}

// expressionFuncs are the single-argument functions an Expression may apply.
var expressionFuncs = map[string]func(float64) float64{
	"abs":  math.Abs,
	"cos":  math.Cos,
	"sin":  math.Sin,
	"sqrt": math.Sqrt,
	"sq":   func(x float64) float64 { return x * x },
	"neg":  func(x float64) float64 { return -x },
}

var (
	branchPattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	funcCallPattern = regexp.MustCompile(`^([a-z]+)\(\s*([A-Za-z_][A-Za-z0-9_]*)\s*\)$`)
)

// Expression is a derived quantity of one tree branch: either the branch
// itself or a single function applied to it, e.g. "abs(cos_theta)".
type Expression struct {
	Func   string
	Branch string
	fn     func(float64) float64
}

// ParseExpression parses "branch" or "fn(branch)".
func ParseExpression(expr string) (Expression, error) {
	expr = strings.TrimSpace(expr)
	if branchPattern.MatchString(expr) {
		return Expression{Branch: expr}, nil
	}

	m := funcCallPattern.FindStringSubmatch(expr)
	if m == nil {
		return Expression{}, fmt.Errorf("%w: %q", ErrInvalidExpression, expr)
	}
	fn, ok := expressionFuncs[m[1]]
	if !ok {
		return Expression{}, fmt.Errorf("%w: unknown function %q", ErrInvalidExpression, m[1])
	}
	return Expression{Func: m[1], Branch: m[2], fn: fn}, nil
}

// Eval applies the expression to one branch value.
func (e Expression) Eval(x float64) float64 {
	if e.fn == nil {
		return x
	}
	return e.fn(x)
}

// String returns the canonical form of the expression.
func (e Expression) String() string {
	if e.Func == "" {
		return e.Branch
	}
	return e.Func + "(" + e.Branch + ")"
}

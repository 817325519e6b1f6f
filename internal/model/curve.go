package model

import "math"

// CurvePoint is one entry of a processed mass range.
type CurvePoint struct {
	Phi float64 `json:"phi"`
	// Delta is the log-likelihood minus the curve baseline.
	Delta float64 `json:"delta"`
	// Plotted is true when Delta is strictly below the curve threshold.
	Plotted bool `json:"plotted"`
}

// Curve is the profile-likelihood curve of one mass range.
type Curve struct {
	Range     MassRange    `json:"range"`
	Baseline  float64      `json:"baseline"`
	Threshold float64      `json:"threshold"`
	Points    []CurvePoint `json:"points"`
}

// Plotted returns the points that survive the threshold, phi ascending.
func (c Curve) Plotted() []CurvePoint {
	out := make([]CurvePoint, 0, len(c.Points))
	for _, p := range c.Points {
		if p.Plotted {
			out = append(out, p)
		}
	}
	return out
}

// Excluded returns the number of points at or above the threshold.
func (c Curve) Excluded() int {
	return len(c.Points) - len(c.Plotted())
}

// BuildCurve processes the entries of one mass range: sort by phi, subtract
// the log-likelihood of the smallest phi from every entry and flag entries
// whose adjusted value is strictly below threshold. An adjusted value that
// overflows to an infinity is never plotted.
func BuildCurve(set *ResultSet, r MassRange, threshold float64) Curve {
	entries := set.Entries(r)
	c := Curve{
		Range:     r,
		Threshold: threshold,
		Points:    make([]CurvePoint, len(entries)),
	}
	if len(entries) == 0 {
		return c
	}

	c.Baseline = entries[0].LogL
	for i, e := range entries {
		delta := e.LogL - c.Baseline
		c.Points[i] = CurvePoint{
			Phi:     e.Phi,
			Delta:   delta,
			Plotted: delta < threshold && !math.IsInf(delta, 0),
		}
	}
	return c
}

// BuildCurves builds one curve per mass range in insertion order.
func BuildCurves(set *ResultSet, threshold float64) []Curve {
	ranges := set.Ranges()
	curves := make([]Curve, 0, len(ranges))
	for _, r := range ranges {
		curves = append(curves, BuildCurve(set, r, threshold))
	}
	return curves
}

package model

import "math"

// PointChange is a (range, phi) pair present in both sets with a different
// log-likelihood.
type PointChange struct {
	Range  MassRange `json:"range"`
	Phi    float64   `json:"phi"`
	Before float64   `json:"before"`
	After  float64   `json:"after"`
}

// Comparison describes how one result set differs from another.
type Comparison struct {
	// Identical is true when both sets are Equal.
	Identical bool `json:"identical"`

	// Reordered is true when both sets hold the same values but their
	// ranges were first seen in a different order.
	Reordered bool `json:"reordered,omitempty"`

	AddedRanges   []MassRange   `json:"added_ranges,omitempty"`
	RemovedRanges []MassRange   `json:"removed_ranges,omitempty"`
	AddedPoints   []ScanPoint   `json:"added_points,omitempty"`
	RemovedPoints []ScanPoint   `json:"removed_points,omitempty"`
	ChangedPoints []PointChange `json:"changed_points,omitempty"`
}

// Compare reports the differences from before to after. Points of added or
// removed ranges are listed in AddedPoints and RemovedPoints as well.
func Compare(before, after *ResultSet) Comparison {
	c := Comparison{Identical: before.Equal(after)}
	if c.Identical {
		return c
	}

	for _, r := range after.order {
		if _, ok := before.entries[r]; !ok {
			c.AddedRanges = append(c.AddedRanges, r)
		}
	}
	for _, r := range before.order {
		if _, ok := after.entries[r]; !ok {
			c.RemovedRanges = append(c.RemovedRanges, r)
		}
	}

	for _, p := range after.Points() {
		old, ok := before.Get(p.Range, p.Phi)
		switch {
		case !ok:
			c.AddedPoints = append(c.AddedPoints, p)
		case math.Float64bits(old) != math.Float64bits(p.LogL):
			c.ChangedPoints = append(c.ChangedPoints, PointChange{
				Range:  p.Range,
				Phi:    p.Phi,
				Before: old,
				After:  p.LogL,
			})
		}
	}
	for _, p := range before.Points() {
		if _, ok := after.Get(p.Range, p.Phi); !ok {
			c.RemovedPoints = append(c.RemovedPoints, p)
		}
	}

	c.Reordered = !c.HasChanges()
	return c
}

// HasChanges reports whether any range or point was added, removed or changed.
func (c Comparison) HasChanges() bool {
	return len(c.AddedRanges) > 0 || len(c.RemovedRanges) > 0 ||
		len(c.AddedPoints) > 0 || len(c.RemovedPoints) > 0 ||
		len(c.ChangedPoints) > 0
}

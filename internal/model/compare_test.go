package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestCompare tests result set comparison.
func TestCompare(t *testing.T) {
	t.Parallel()

	t.Run("identical sets", func(t *testing.T) {
		t.Parallel()
		c := Compare(scenarioSet(), scenarioSet())
		if !c.Identical {
			t.Error("expected identical")
		}
		if c.HasChanges() || c.Reordered {
			t.Errorf("expected no changes, got %+v", c)
		}
	})

	t.Run("reports added removed and changed", func(t *testing.T) {
		t.Parallel()

		before := scenarioSet()
		after := NewResultSet()
		after.Add(ScanPoint{Range: rangeA, Phi: 0.0, LogL: 12.0})
		after.Add(ScanPoint{Range: rangeA, Phi: 0.5, LogL: 11.0})
		after.Add(ScanPoint{Range: rangeB, Phi: 0.0, LogL: 3.0})

		got := Compare(before, after)
		want := Comparison{
			AddedRanges:   []MassRange{rangeB},
			AddedPoints:   []ScanPoint{{Range: rangeB, Phi: 0.0, LogL: 3.0}},
			RemovedPoints: []ScanPoint{{Range: rangeA, Phi: 1.0, LogL: 15.0}},
			ChangedPoints: []PointChange{{Range: rangeA, Phi: 0.5, Before: 10.0, After: 11.0}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("comparison mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("removed range", func(t *testing.T) {
		t.Parallel()

		before := scenarioSet()
		before.Add(ScanPoint{Range: rangeB, Phi: 1, LogL: 1})

		got := Compare(before, scenarioSet())
		if diff := cmp.Diff([]MassRange{rangeB}, got.RemovedRanges); diff != "" {
			t.Errorf("removed ranges mismatch (-want +got):\n%s", diff)
		}
		if len(got.RemovedPoints) != 1 {
			t.Errorf("expected 1 removed point, got %d", len(got.RemovedPoints))
		}
	})

	t.Run("same values in different order", func(t *testing.T) {
		t.Parallel()

		a := NewResultSet()
		a.Add(ScanPoint{Range: rangeA, Phi: 0, LogL: 1})
		a.Add(ScanPoint{Range: rangeB, Phi: 0, LogL: 2})
		b := NewResultSet()
		b.Add(ScanPoint{Range: rangeB, Phi: 0, LogL: 2})
		b.Add(ScanPoint{Range: rangeA, Phi: 0, LogL: 1})

		c := Compare(a, b)
		if c.Identical {
			t.Error("expected not identical")
		}
		if !c.Reordered {
			t.Error("expected reordered")
		}
	})
}

package model

import "time"

// ScanSummary is the outcome of one scan run, as written by the report
// writers and stored in the run history.
type ScanSummary struct {
	// Inputs are the file paths in command-line order.
	Inputs []string `json:"inputs"`

	// Threshold is the exclusive upper limit on plotted adjusted values.
	Threshold float64 `json:"threshold"`

	// Output is the path of the rendered document.
	Output string `json:"output"`

	// Curves holds one processed curve per mass range, in insertion order.
	Curves []Curve `json:"curves"`

	// Digest is the ResultSet digest.
	Digest string `json:"digest"`

	// DateScanned is when the run finished.
	DateScanned time.Time `json:"date_scanned"`
}

// NewScanSummary builds the summary of a completed run.
func NewScanSummary(inputs []string, output string, threshold float64, set *ResultSet) *ScanSummary {
	return &ScanSummary{
		Inputs:      inputs,
		Threshold:   threshold,
		Output:      output,
		Curves:      BuildCurves(set, threshold),
		Digest:      set.Digest(),
		DateScanned: time.Now(),
	}
}

// PointCount returns the total number of points across all curves.
func (s *ScanSummary) PointCount() int {
	n := 0
	for _, c := range s.Curves {
		n += len(c.Points)
	}
	return n
}

// PlottedCount returns the number of points below the threshold.
func (s *ScanSummary) PlottedCount() int {
	n := 0
	for _, c := range s.Curves {
		n += len(c.Plotted())
	}
	return n
}

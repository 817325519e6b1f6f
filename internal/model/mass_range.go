package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// massRangePattern matches the bracketed range in names such as
// "h_cos_hj_mass[100,200)". The capture is split on commas afterwards.
var massRangePattern = regexp.MustCompile(`hj_mass\[([0-9,.eE+-]*)\)`)

// MassRange is the half-open interval [Low, High) used as the primary
// grouping key of a scan. It is comparable and can be used as a map key.
type MassRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ParseMassRange extracts the hj_mass[low,high) range from an object name.
// The bracket must contain exactly two comma-separated numbers.
func ParseMassRange(name string) (MassRange, error) {
	m := massRangePattern.FindStringSubmatch(name)
	if m == nil {
		return MassRange{}, fmt.Errorf("%w: %q", ErrNoMassRange, name)
	}

	fields := strings.Split(m[1], ",")
	if len(fields) != 2 {
		return MassRange{}, fmt.Errorf("%w: %q has %d bounds", ErrNoMassRange, name, len(fields))
	}

	low, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return MassRange{}, fmt.Errorf("%w: %q: lower bound: %w", ErrNoMassRange, name, err)
	}
	high, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return MassRange{}, fmt.Errorf("%w: %q: upper bound: %w", ErrNoMassRange, name, err)
	}

	return MassRange{Low: low, High: high}, nil
}

// String formats the range the way it appears in object names, e.g. "[100,200)".
func (r MassRange) String() string {
	return "[" + formatFloat(r.Low) + "," + formatFloat(r.High) + ")"
}

// Title returns the page title used for plots, with bounds rounded to integers.
func (r MassRange) Title() string {
	return fmt.Sprintf("hj_mass in [%.0f,%.0f)", r.Low, r.High)
}

// formatFloat prints the shortest representation that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

package model

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// ScanFileSuffix is stripped from a file's base name before the scan
	// parameter is parsed.
	ScanFileSuffix = ".root"

	// LogLikelihoodMarker identifies the auxiliary item that carries the fit
	// result of an object.
	LogLikelihoodMarker = "-logl"
)

// AuxItem is a named sub-object attached to a stored object. Only its name
// and display title are used.
type AuxItem struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// StoredObject is one named object read from a scan-result file together
// with the auxiliary items attached to it.
type StoredObject struct {
	Name string    `json:"name"`
	Aux  []AuxItem `json:"aux,omitempty"`
}

// ScanFile is the per-file record threaded through the scan pipeline.
// Steps fill it in order: Phi, then Objects, then Points.
type ScanFile struct {
	// Path is the file path exactly as given on the command line.
	Path string `json:"path"`

	// Phi is the scan-parameter value parsed from the file name.
	Phi float64 `json:"phi"`

	// Objects are the stored objects in key order.
	Objects []StoredObject `json:"objects,omitempty"`

	// Points are the extracted scan points, one per object.
	Points []ScanPoint `json:"points,omitempty"`

	// PerformedSteps lists the pipeline steps that completed for this file.
	PerformedSteps []string `json:"performed_steps,omitempty"`
}

// NewScanFile creates an empty record for the given path.
func NewScanFile(path string) *ScanFile {
	return &ScanFile{Path: path}
}

// ParseScanParameter parses the scan parameter encoded in a file name of the
// form <phi>.root. Directories are ignored, so "runs/0.5.root" gives 0.5.
// NaN and infinities cannot be plotted and are rejected.
func ParseScanParameter(path string) (float64, error) {
	base := strings.TrimSuffix(filepath.Base(path), ScanFileSuffix)
	phi, err := strconv.ParseFloat(base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScanParameter, path)
	}
	if math.IsNaN(phi) || math.IsInf(phi, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrInvalidScanParameter, path)
	}
	return phi, nil
}

// ParseLogLikelihood finds the first auxiliary item whose name contains
// LogLikelihoodMarker and returns the number after the first '=' of its title.
func ParseLogLikelihood(items []AuxItem) (float64, error) {
	for _, item := range items {
		if !strings.Contains(item.Name, LogLikelihoodMarker) {
			continue
		}

		fields := strings.Split(item.Title, "=")
		if len(fields) < 2 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedLogLikelihood, item.Title)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrMalformedLogLikelihood, item.Title, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %q is not a finite number", ErrMalformedLogLikelihood, item.Title)
		}
		return v, nil
	}
	return 0, ErrNoLogLikelihood
}

// ExtractPoint turns one stored object into a scan point for the given phi.
func ExtractPoint(obj StoredObject, phi float64) (ScanPoint, error) {
	r, err := ParseMassRange(obj.Name)
	if err != nil {
		return ScanPoint{}, err
	}
	logl, err := ParseLogLikelihood(obj.Aux)
	if err != nil {
		return ScanPoint{}, fmt.Errorf("object %q: %w", obj.Name, err)
	}
	return ScanPoint{Range: r, Phi: phi, LogL: logl}, nil
}

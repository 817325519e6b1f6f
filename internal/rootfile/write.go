package rootfile

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/hbook"
)

// HistogramWriter stores one histogram into a new file.
type HistogramWriter interface {
	WriteH1D(path, name string, h *hbook.H1D) error
}

// GrootWriter writes histograms with groot.
type GrootWriter struct{}

// WriteH1D creates or overwrites path and stores h under name as a TH1D.
func (GrootWriter) WriteH1D(path, name string, h *hbook.H1D) error {
	f, err := groot.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	h.Annotation()["name"] = name
	if err := f.Put(name, rhist.NewH1DFrom(h)); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s to %s: %w", name, path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

package plot

import (
	"fmt"
	"image/color"
	"path/filepath"
	"slices"
	"strings"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	// registers every output format known to gonum/plot
	_ "gonum.org/v1/plot"
)

// PreviewFormats lists the file extensions SaveHistogram accepts.
var PreviewFormats = []string{".pdf", ".png", ".svg", ".eps", ".jpg", ".jpeg", ".tif", ".tiff"}

// SaveHistogram draws h with the given title and saves it to path. The image
// format is taken from the file extension.
func SaveHistogram(path, title, xlabel string, h *hbook.H1D) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(PreviewFormats, ext) {
		return fmt.Errorf("unsupported preview format %q", ext)
	}

	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "entries"

	hh := hplot.NewH1D(h)
	hh.Color = color.NRGBA{B: 255, A: 255}
	p.Add(hh, hplot.NewGrid())

	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return fmt.Errorf("failed to save preview %s: %w", path, err)
	}
	return nil
}

package plot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/hjangles/llscan/internal/model"
)

// Page labels.
const (
	XLabel         = "phi_2"
	YLabel         = "Delta L = L_0 - L(phi_2)"
	DefinitionText = "L = -2 log sum w_i f(x_i)"
)

// Default page size, 6.4 x 4.8 inches.
const (
	DefaultWidth  = 6.4 * vg.Inch
	DefaultHeight = 4.8 * vg.Inch
)

// ErrNoCurves is returned when there is nothing to render. A PDF needs at
// least one page.
var ErrNoCurves = errors.New("no curves to render")

var curveColor = color.RGBA{R: 255, A: 255}

// Renderer draws curves onto PDF pages.
type Renderer struct {
	width  vg.Length
	height vg.Length
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPageSize sets the page size.
func WithPageSize(w, h vg.Length) Option {
	return func(r *Renderer) {
		r.width = w
		r.height = h
	}
}

// NewRenderer creates a renderer with the default page size.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		width:  DefaultWidth,
		height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BaselineText returns the baseline annotation of a page.
func BaselineText(baseline float64) string {
	return fmt.Sprintf("L_0 = %.5E", baseline)
}

// NewCurvePlot builds the plot of one curve: only its plotted points,
// joined by a red line with circle markers.
func NewCurvePlot(c model.Curve) (*hplot.Plot, error) {
	plotted := c.Plotted()
	xys := make(plotter.XYs, len(plotted))
	for i, p := range plotted {
		xys[i].X = p.Phi
		xys[i].Y = p.Delta
	}

	p := hplot.New()
	p.Title.Text = c.Range.Title()
	p.X.Label.Text = XLabel
	p.X.Label.Position = draw.PosRight
	p.Y.Label.Text = YLabel
	p.Y.Label.Position = draw.PosTop

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("curve %s: %w", c.Range, err)
	}
	line.Color = curveColor
	points.GlyphStyle.Color = curveColor
	points.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(line, points, hplot.NewGrid())
	return p, nil
}

// Render writes one page per curve, in order, to w.
func (r *Renderer) Render(w io.Writer, curves []model.Curve) error {
	if len(curves) == 0 {
		return ErrNoCurves
	}

	canvas := vgpdf.New(r.width, r.height)
	for i, c := range curves {
		p, err := NewCurvePlot(c)
		if err != nil {
			return err
		}
		if i > 0 {
			canvas.NextPage()
		}

		dc := draw.New(canvas)
		p.Draw(dc)
		r.annotate(dc, p, c)
	}

	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// annotate writes the likelihood definition and the baseline in the top
// right corner of the page.
func (r *Renderer) annotate(dc draw.Canvas, p *hplot.Plot, c model.Curve) {
	sty := p.Title.TextStyle
	sty.XAlign = draw.XLeft
	sty.YAlign = draw.YTop

	dc.FillText(sty, vg.Point{X: dc.X(0.75), Y: dc.Y(0.95)}, DefinitionText)
	dc.FillText(sty, vg.Point{X: dc.X(0.75), Y: dc.Y(0.90)}, BaselineText(c.Baseline))
}

// RenderFile renders curves into the file at path, replacing it. On error
// the partial file is removed.
func (r *Renderer) RenderFile(path string, curves []model.Curve) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return r.Render(f, curves)
}

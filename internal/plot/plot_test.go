package plot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-hep.org/x/hep/hbook"

	"github.com/hjangles/llscan/internal/model"
)

func testCurves() []model.Curve {
	set := model.NewResultSet()
	a := model.MassRange{Low: 100, High: 200}
	b := model.MassRange{Low: 200, High: 300}
	set.Add(model.ScanPoint{Range: a, Phi: 0.0, LogL: 12.0})
	set.Add(model.ScanPoint{Range: a, Phi: 0.5, LogL: 10.0})
	set.Add(model.ScanPoint{Range: a, Phi: 1.0, LogL: 15.0})
	set.Add(model.ScanPoint{Range: b, Phi: 0.0, LogL: 1.0})
	set.Add(model.ScanPoint{Range: b, Phi: 1.0, LogL: 500})
	return model.BuildCurves(set, 10)
}

// TestBaselineText tests the baseline annotation format.
func TestBaselineText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{in: 12, want: "L_0 = 1.20000E+01"},
		{in: -1234.5678, want: "L_0 = -1.23457E+03"},
		{in: 0, want: "L_0 = 0.00000E+00"},
	}
	for _, tt := range tests {
		if got := BaselineText(tt.in); got != tt.want {
			t.Errorf("BaselineText(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

// TestNewCurvePlot tests plot labels.
func TestNewCurvePlot(t *testing.T) {
	t.Parallel()

	curves := testCurves()
	p, err := NewCurvePlot(curves[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title.Text != "hj_mass in [100,200)" {
		t.Errorf("expected title %q, got %q", "hj_mass in [100,200)", p.Title.Text)
	}
	if p.X.Label.Text != XLabel || p.Y.Label.Text != YLabel {
		t.Errorf("unexpected axis labels %q, %q", p.X.Label.Text, p.Y.Label.Text)
	}
}

// TestRender tests multi-page PDF output.
func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("writes a pdf", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewRenderer().Render(&buf, testCurves()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
			t.Error("expected output to start with %PDF")
		}
	})

	t.Run("no curves", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewRenderer().Render(&buf, nil); !errors.Is(err, ErrNoCurves) {
			t.Errorf("expected ErrNoCurves, got %v", err)
		}
	})

	t.Run("RenderFile replaces the file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "scan.pdf")
		if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := NewRenderer().RenderFile(path, testCurves()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Error("expected file to be a pdf")
		}
	})

	t.Run("RenderFile removes partial output", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "scan.pdf")
		if err := NewRenderer().RenderFile(path, nil); err == nil {
			t.Fatal("expected error")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed, stat err %v", path, err)
		}
	})
}

// TestSaveHistogram tests the histogram preview.
func TestSaveHistogram(t *testing.T) {
	t.Parallel()

	h := hbook.NewH1D(50, 0, 1)
	h.Fill(0.3, 1)
	h.Fill(0.7, 1)

	t.Run("png", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "h.png")
		if err := SaveHistogram(path, "h_cos_theta", "abs(cos_theta)", h); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("expected non-empty file, got %v", err)
		}
	})

	t.Run("unknown extension", func(t *testing.T) {
		t.Parallel()
		if err := SaveHistogram(filepath.Join(t.TempDir(), "h.bmp"), "", "", h); err == nil {
			t.Error("expected error for .bmp")
		}
	})
}

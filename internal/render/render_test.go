package render

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestHeatmap_Size(t *testing.T) {
	tbl := rateTable(t, 50, 400, func(i, j int) float64 { return float64((i + j) % 37) })

	tests := []struct {
		name  string
		opts  HeatmapOptions
		wantW int
		wantH int
	}{
		{"linear with fixed ticks", HeatmapOptions{Time: &TimeAxis{Start: 0, End: 4}, NeuronTickStep: 10}, 640, 480},
		{"log scale", HeatmapOptions{Scale: Log, Time: &TimeAxis{Start: 4, End: 8}}, 640, 480},
		{"default ticks custom size", HeatmapOptions{Size: Size{Width: 3, Height: 2}, DPI: 50}, 150, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, err := Heatmap("rates", tbl, tt.opts)
			if err != nil {
				t.Fatalf("Heatmap failed: %v", err)
			}
			b := fig.Image.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("image size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if fig.Name != "rates" {
				t.Errorf("Name = %q, want \"rates\"", fig.Name)
			}
		})
	}
}

func TestHeatmap_ConstantTable(t *testing.T) {
	tbl := rateTable(t, 4, 4, func(i, j int) float64 { return 0 })
	for _, s := range []Scale{Linear, Log} {
		if _, err := Heatmap("flat", tbl, HeatmapOptions{Scale: s}); err != nil {
			t.Errorf("Heatmap(%s) on constant table failed: %v", s, err)
		}
	}
}

func TestWeightChange(t *testing.T) {
	xs := make([]float64, 101)
	ys := make([]float64, 101)
	for i := range xs {
		xs[i] = float64(200 + i)
		ys[i] = 2 * math.Exp(-math.Pow(float64(i-50)/10, 2))
	}

	fig, err := WeightChange("weights_3s", xs, ys, LineOptions{
		XLim: &Limits{Min: 200, Max: 300},
		YLim: &Limits{Min: 0, Max: 3},
		Size: Size{Width: 5, Height: 1.5},
	})
	if err != nil {
		t.Fatalf("WeightChange failed: %v", err)
	}
	b := fig.Image.Bounds()
	if b.Dx() != 500 || b.Dy() != 150 {
		t.Errorf("image size = %dx%d, want 500x150", b.Dx(), b.Dy())
	}
}

func TestWeightChange_AllZerosWithoutLimits(t *testing.T) {
	xs := []float64{200, 201, 202}
	ys := []float64{0, 0, 0}
	if _, err := WeightChange("flat", xs, ys, LineOptions{}); err != nil {
		t.Fatalf("WeightChange on flat data failed: %v", err)
	}
}

func TestWeightChange_LengthMismatch(t *testing.T) {
	if _, err := WeightChange("bad", []float64{1, 2}, []float64{1}, LineOptions{}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := WeightChange("empty", nil, nil, LineOptions{}); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestFitRange(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want Limits
	}{
		{"spread", []float64{3, -1, 2}, Limits{-1, 3}},
		{"constant", []float64{0, 0}, Limits{-1, 1}},
		{"skips NaN", []float64{math.NaN(), 1, 4}, Limits{1, 4}},
		{"all NaN", []float64{math.NaN()}, Limits{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fitRange(tt.in)
			if *got != tt.want {
				t.Errorf("fitRange(%v) = %+v, want %+v", tt.in, *got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    drawing.Color
		wantErr bool
	}{
		{"", drawing.Color{}, false},
		{"b", drawing.Color{R: 0, G: 0, B: 255, A: 255}, false},
		{"Red", drawing.Color{R: 255, G: 0, B: 0, A: 255}, false},
		{"#00ff00", drawing.Color{R: 0, G: 255, B: 0, A: 255}, false},
		{"chartreuse-ish", drawing.Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFigureSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")
	tbl := rateTable(t, 5, 5, func(i, j int) float64 { return float64(i + j) })
	fig, err := Heatmap("full_simulation_rates", tbl, HeatmapOptions{Size: Size{Width: 2, Height: 2}})
	if err != nil {
		t.Fatalf("Heatmap failed: %v", err)
	}

	path, err := fig.Save(dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != "full_simulation_rates.png" {
		t.Errorf("saved as %q, want full_simulation_rates.png", filepath.Base(path))
	}
	if fig.Path != path {
		t.Errorf("fig.Path = %q, want %q", fig.Path, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved figure: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("saved figure is not a PNG: %v", err)
	}
}

func TestFigureSave_KeepsPNGExtension(t *testing.T) {
	dir := t.TempDir()
	fig, err := WeightChange("weights.png", []float64{0, 1}, []float64{0, 1}, LineOptions{Size: Size{Width: 4, Height: 2}})
	if err != nil {
		t.Fatalf("WeightChange failed: %v", err)
	}
	path, err := fig.Save(dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if strings.HasSuffix(path, ".png.png") {
		t.Errorf("extension doubled: %s", path)
	}
}

func TestFigureSave_RejectsEscape(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")
	fig := &Figure{Name: "../outside", Image: rateFigureImage(t)}
	if _, err := fig.Save(dir); err == nil {
		t.Fatal("expected figure name escaping the figure dir to be rejected")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "outside.png")); !os.IsNotExist(err) {
		t.Error("escaping figure was written")
	}
}

func TestFigureSave_NoName(t *testing.T) {
	fig := &Figure{Image: rateFigureImage(t)}
	if _, err := fig.Save(t.TempDir()); err == nil {
		t.Error("expected error for unnamed figure")
	}
}

func rateFigureImage(t *testing.T) image.Image {
	t.Helper()
	return image.NewRGBA(image.Rect(0, 0, 4, 4))
}

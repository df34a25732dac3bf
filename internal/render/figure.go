// Package render draws rate heatmaps and weight-change line plots into
// raster figures.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvandessel/rateplot/internal/pathutil"
)

// Size is a figure size in inches.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// DefaultSize matches the usual 6.4x4.8 inch figure.
var DefaultSize = Size{Width: 6.4, Height: 4.8}

// DefaultDPI is the raster resolution used when none is configured.
const DefaultDPI = 100

// pixels converts the size to whole pixels at dpi.
func (s Size) pixels(dpi float64) (int, int) {
	if s.Width <= 0 || s.Height <= 0 {
		s = DefaultSize
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return int(s.Width * dpi), int(s.Height * dpi)
}

// Figure is a rendered raster image.
type Figure struct {
	// Name is the output file name without extension.
	Name string

	// Image holds the rendered pixels.
	Image image.Image

	// Path is where the figure was written; empty until Save succeeds.
	Path string
}

// PNG encodes the figure.
func (f *Figure) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, f.Image); err != nil {
		return nil, fmt.Errorf("png encode %s: %w", f.Name, err)
	}
	return buf.Bytes(), nil
}

// Save writes the figure as <dir>/<Name>.png, creating dir if needed, and
// returns the written path. Names that would escape dir are rejected.
func (f *Figure) Save(dir string) (string, error) {
	if f.Name == "" {
		return "", fmt.Errorf("figure has no name")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create figure dir: %w", err)
	}

	name := f.Name
	if !strings.EqualFold(filepath.Ext(name), ".png") {
		name += ".png"
	}
	outPath := filepath.Join(dir, name)
	if err := pathutil.Within(dir, outPath); err != nil {
		return "", err
	}

	data, err := f.PNG()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	f.Path = outPath
	return outPath, nil
}

package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot/palette"

	"github.com/nvandessel/rateplot/internal/table"
)

// Scale selects how rate values map onto colours.
type Scale string

const (
	// Linear maps [min, max] of the table linearly onto the colour map.
	Linear Scale = "linear"

	// Log maps log10 of the value onto the colour map, floored at LogFloor.
	Log Scale = "log"
)

// LogFloor is the lower bound of the logarithmic colour scale. Values below
// it (including zero and negative rates) are drawn in the floor colour.
const LogFloor = 1.0

// ParseScale maps a scale name to a Scale. Empty selects Linear.
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return Linear, nil
	case "log", "logarithmic":
		return Log, nil
	default:
		return "", fmt.Errorf("invalid colour scale %q (valid: linear, log)", s)
	}
}

// Bounds returns the value range the colour scale covers for t.
// Linear uses the table minimum and maximum. Log uses LogFloor and the table
// maximum regardless of the table minimum.
func Bounds(s Scale, t *table.Table) (lo, hi float64) {
	if s == Log {
		return LogFloor, t.Max()
	}
	return t.Min(), t.Max()
}

// transform returns the function applied to each cell before colouring and
// the colour map range in transformed units.
func transform(s Scale, lo, hi float64) (func(float64) float64, float64, float64) {
	if s == Log {
		f := func(v float64) float64 {
			if math.IsNaN(v) {
				return v
			}
			return math.Log10(math.Min(math.Max(v, lo), math.Max(hi, lo)))
		}
		lo, hi = math.Log10(lo), math.Log10(math.Max(hi, lo))
		return f, lo, widen(lo, hi)
	}
	return func(v float64) float64 { return v }, lo, widen(lo, hi)
}

// widen keeps a degenerate range drawable.
func widen(lo, hi float64) float64 {
	if hi <= lo {
		return lo + 1
	}
	return hi
}

// HotR is matplotlib's "hot_r" colour map: white at the minimum through
// yellow and red to black at the maximum.
type HotR struct {
	min, max float64
	alpha    float64
}

var _ palette.ColorMap = (*HotR)(nil)

// NewHotR returns a HotR map over [0, 1].
func NewHotR() *HotR {
	return &HotR{max: 1, alpha: 1}
}

// At implements palette.ColorMap.
func (h *HotR) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < h.min:
		return nil, palette.ErrUnderflow
	case v > h.max:
		return nil, palette.ErrOverflow
	}
	x := 0.0
	if h.max > h.min {
		x = (v - h.min) / (h.max - h.min)
	}
	r, g, b := hot(1 - x)
	return color.NRGBA{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
		A: uint8(math.Round(h.alpha * 255)),
	}, nil
}

// Min implements palette.ColorMap.
func (h *HotR) Min() float64 { return h.min }

// Max implements palette.ColorMap.
func (h *HotR) Max() float64 { return h.max }

// SetMin implements palette.ColorMap.
func (h *HotR) SetMin(v float64) { h.min = v }

// SetMax implements palette.ColorMap.
func (h *HotR) SetMax(v float64) { h.max = v }

// Alpha implements palette.ColorMap.
func (h *HotR) Alpha() float64 { return h.alpha }

// SetAlpha implements palette.ColorMap.
func (h *HotR) SetAlpha(a float64) { h.alpha = a }

// Palette implements palette.ColorMap, sampling n colours evenly over [Min, Max].
func (h *HotR) Palette(n int) palette.Palette {
	cols := make(colors, n)
	for i := range cols {
		v := h.min
		if n > 1 {
			v = h.min + (h.max-h.min)*float64(i)/float64(n-1)
		}
		c, err := h.At(v)
		if err != nil {
			c = color.Transparent
		}
		cols[i] = c
	}
	return cols
}

type colors []color.Color

func (c colors) Colors() []color.Color { return c }

// hot is matplotlib's "hot" segment data: red ramps first, then green, then blue.
func hot(x float64) (r, g, b float64) {
	const (
		redEnd   = 0.365079
		greenEnd = 0.746032
		redStart = 0.0416
	)
	x = math.Max(0, math.Min(1, x))
	r = math.Min(1, redStart+(1-redStart)*x/redEnd)
	g = math.Max(0, math.Min(1, (x-redEnd)/(greenEnd-redEnd)))
	b = math.Max(0, math.Min(1, (x-greenEnd)/(1-greenEnd)))
	return r, g, b
}

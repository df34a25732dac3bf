package render

import (
	"bytes"
	"fmt"
	"image/png"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Limits is a fixed axis range.
type Limits struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// LineOptions configures a weight-change line plot.
type LineOptions struct {
	Title  string
	XLabel string
	YLabel string

	// XLim and YLim fix the axis ranges. Nil fits the data.
	XLim *Limits
	YLim *Limits

	Color drawing.Color
	Size  Size
	DPI   float64
}

func (o LineOptions) withDefaults() LineOptions {
	if o.XLabel == "" {
		o.XLabel = "Neuron #"
	}
	if o.YLabel == "" {
		o.YLabel = "Change"
	}
	if o.Color.IsZero() {
		o.Color = lineColors["b"]
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	return o
}

// lineColors maps single-letter and named colours to drawing colours.
var lineColors = map[string]drawing.Color{
	"b":     {R: 0, G: 0, B: 255, A: 255},
	"g":     {R: 0, G: 128, B: 0, A: 255},
	"r":     {R: 255, G: 0, B: 0, A: 255},
	"c":     {R: 0, G: 191, B: 191, A: 255},
	"m":     {R: 191, G: 0, B: 191, A: 255},
	"y":     {R: 191, G: 191, B: 0, A: 255},
	"k":     {R: 0, G: 0, B: 0, A: 255},
	"blue":  {R: 0, G: 0, B: 255, A: 255},
	"green": {R: 0, G: 128, B: 0, A: 255},
	"red":   {R: 255, G: 0, B: 0, A: 255},
	"black": {R: 0, G: 0, B: 0, A: 255},
}

// ParseColor accepts a single-letter colour code, a colour name, or #rrggbb.
// Empty returns the zero colour, which selects the default.
func ParseColor(s string) (drawing.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return drawing.Color{}, nil
	}
	if c, ok := lineColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && (len(s) == 7 || len(s) == 4) {
		return drawing.ColorFromHex(strings.TrimPrefix(s, "#")), nil
	}
	return drawing.Color{}, fmt.Errorf("invalid line colour %q", s)
}

// WeightChange plots ys against xs as a single line.
func WeightChange(name string, xs, ys []float64, opts LineOptions) (*Figure, error) {
	opts = opts.withDefaults()
	if len(xs) == 0 || len(xs) != len(ys) {
		return nil, fmt.Errorf("weight plot %s: got %d x values and %d y values", name, len(xs), len(ys))
	}

	xr := opts.XLim
	if xr == nil {
		xr = fitRange(xs)
	}
	yr := opts.YLim
	if yr == nil {
		yr = fitRange(ys)
	}

	wpx, hpx := opts.Size.pixels(opts.DPI)
	ch := chart.Chart{
		Title:      opts.Title,
		Width:      wpx,
		Height:     hpx,
		DPI:        opts.DPI,
		Background: chart.Style{Padding: chart.Box{Top: 12, Left: 16, Right: 16, Bottom: 12}},
		XAxis: chart.XAxis{
			Name:           opts.XLabel,
			Range:          &chart.ContinuousRange{Min: xr.Min, Max: xr.Max},
			ValueFormatter: tickFormatter,
		},
		YAxis: chart.YAxis{
			Name:           opts.YLabel,
			Range:          &chart.ContinuousRange{Min: yr.Min, Max: yr.Max},
			ValueFormatter: tickFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    name,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: opts.Color,
					StrokeWidth: 1.5,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render weight plot %s: %w", name, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode weight plot %s: %w", name, err)
	}
	return &Figure{Name: name, Image: img}, nil
}

// fitRange spans the finite values, padded when they are all equal.
func fitRange(vs []float64) *Limits {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return &Limits{Min: 0, Max: 1}
	}
	if hi <= lo {
		return &Limits{Min: lo - 1, Max: hi + 1}
	}
	return &Limits{Min: lo, Max: hi}
}

func tickFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return formatTick(f)
	}
	return fmt.Sprintf("%v", v)
}

package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/nvandessel/rateplot/internal/table"
)

// HeatmapOptions configures a rate heatmap.
type HeatmapOptions struct {
	Title         string
	XLabel        string
	YLabel        string
	ColorBarTitle string

	// Time sets fixed time-axis ticks. Nil leaves the default ticker.
	Time *TimeAxis

	// NeuronTickStep sets fixed neuron-axis ticks every N rows. Zero leaves
	// the default ticker.
	NeuronTickStep int

	Scale    Scale
	Size     Size
	DPI      float64
	FontSize float64
}

func (o HeatmapOptions) withDefaults() HeatmapOptions {
	if o.XLabel == "" {
		o.XLabel = "Time (s)"
	}
	if o.YLabel == "" {
		o.YLabel = "Neuron #"
	}
	if o.ColorBarTitle == "" {
		o.ColorBarTitle = "Rate (Hz)"
	}
	if o.Scale == "" {
		o.Scale = Linear
	}
	if o.FontSize <= 0 {
		o.FontSize = 10
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	return o
}

// colorBarShare is the fraction of the figure width given to the colour bar.
const colorBarShare = 0.16

// rateGrid adapts a table to plotter.GridXYZ. Cell (r, c) spans
// [c, c+1] x [r, r+1], so row 0 is drawn at the bottom.
type rateGrid struct {
	t *table.Table
	z func(float64) float64
}

func (g rateGrid) Dims() (c, r int) {
	r, c = g.t.Dims()
	return c, r
}

func (g rateGrid) Z(c, r int) float64 { return g.z(g.t.At(r, c)) }
func (g rateGrid) X(c int) float64    { return float64(c) + 0.5 }
func (g rateGrid) Y(r int) float64    { return float64(r) + 0.5 }

// Heatmap draws t as a coloured grid with a vertical colour bar. Rows are
// drawn bottom to top in table order; callers reverse the table first to
// show neuron ids high-to-low.
func Heatmap(name string, t *table.Table, opts HeatmapOptions) (*Figure, error) {
	opts = opts.withDefaults()
	rows, cols := t.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("heatmap %s: %w", name, table.ErrEmpty)
	}

	lo, hi := Bounds(opts.Scale, t)
	z, zlo, zhi := transform(opts.Scale, lo, hi)

	cm := NewHotR()
	cm.SetMin(zlo)
	cm.SetMax(zhi)

	hm := plotter.NewHeatMap(rateGrid{t: t, z: z}, cm.Palette(256))
	hm.Min, hm.Max = zlo, zhi
	hm.Rasterized = true

	fontSize := vg.Points(opts.FontSize)

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.X.Label.TextStyle.Font.Size = fontSize
	p.Y.Label.TextStyle.Font.Size = fontSize
	p.X.Min, p.X.Max = 0, float64(cols)
	p.Y.Min, p.Y.Max = 0, float64(rows)
	p.X.Padding, p.Y.Padding = 0, 0
	if opts.Time != nil {
		p.X.Tick.Marker = plot.ConstantTicks(TimeTicks(cols, *opts.Time))
	}
	if opts.NeuronTickStep > 0 {
		p.Y.Tick.Marker = plot.ConstantTicks(NeuronTicks(rows, opts.NeuronTickStep))
	}
	p.Add(hm)

	cb := &plotter.ColorBar{ColorMap: cm, Vertical: true}
	cbp := plot.New()
	cbp.Title.Text = opts.ColorBarTitle
	cbp.Title.TextStyle.Font.Size = fontSize
	cbp.HideX()
	cbp.Y.Padding = 0
	if opts.Scale == Log {
		cbp.Y.Tick.Marker = plot.ConstantTicks(decadeTicks(zlo, zhi))
	}
	cbp.Add(cb)

	wpx, hpx := opts.Size.pixels(opts.DPI)
	width := vg.Length(float64(wpx)/opts.DPI) * vg.Inch
	height := vg.Length(float64(hpx)/opts.DPI) * vg.Inch
	cbWidth := width * colorBarShare

	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(int(opts.DPI)))
	dc := draw.New(img)
	p.Draw(draw.Crop(dc, 0, -cbWidth, 0, 0))
	cbp.Draw(draw.Crop(dc, width-cbWidth, 0, 0, 0))

	return &Figure{Name: name, Image: img.Image()}, nil
}

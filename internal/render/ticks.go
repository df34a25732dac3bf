package render

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// TimeAxis maps the column range of a rate table onto simulated seconds.
type TimeAxis struct {
	// Start is the time, in seconds, of the first column.
	Start float64 `json:"start" yaml:"start"`

	// End is the time, in seconds, just past the last column.
	End float64 `json:"end" yaml:"end"`

	// Divisions is the number of intervals between ticks. Defaults to 8.
	Divisions int `json:"divisions,omitempty" yaml:"divisions,omitempty"`
}

// DefaultDivisions is the number of tick intervals on the time axis.
const DefaultDivisions = 8

func (a TimeAxis) divisions() int {
	if a.Divisions <= 0 {
		return DefaultDivisions
	}
	return a.Divisions
}

// TimeTicks returns Divisions+1 ticks evenly spaced over [0, cols], labelled
// from Start to End in seconds.
func TimeTicks(cols int, axis TimeAxis) []plot.Tick {
	n := axis.divisions()
	step := float64(cols) / float64(n)
	span := (axis.End - axis.Start) / float64(n)

	ticks := make([]plot.Tick, n+1)
	for i := range ticks {
		ticks[i] = plot.Tick{
			Value: float64(i) * step,
			Label: formatTick(axis.Start + float64(i)*span),
		}
	}
	return ticks
}

// NeuronTicks returns ticks every step rows over [0, rows]. Rows are drawn
// high-to-low, so the tick at position p is labelled rows-p.
func NeuronTicks(rows, step int) []plot.Tick {
	if step <= 0 {
		return nil
	}
	var ticks []plot.Tick
	for p := 0; p <= rows; p += step {
		ticks = append(ticks, plot.Tick{
			Value: float64(p),
			Label: strconv.Itoa(rows - p),
		})
	}
	return ticks
}

// decadeTicks labels log10-scaled colour bar positions with their linear value.
func decadeTicks(lo, hi float64) []plot.Tick {
	var ticks []plot.Tick
	for e := math.Ceil(lo); e <= hi; e++ {
		ticks = append(ticks, plot.Tick{Value: e, Label: formatTick(math.Pow(10, e))})
	}
	if len(ticks) >= 2 {
		return ticks
	}
	ticks = plot.DefaultTicks{}.Ticks(lo, hi)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = fmt.Sprintf("%.3g", math.Pow(10, ticks[i].Value))
		}
	}
	return ticks
}

func formatTick(v float64) string {
	// Avoid "-0" and float noise such as 0.30000000000000004.
	v = math.Round(v*1e9) / 1e9
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

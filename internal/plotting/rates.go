package plotting

import (
	"fmt"

	"github.com/nvandessel/rateplot/internal/logging"
	"github.com/nvandessel/rateplot/internal/render"
	"github.com/nvandessel/rateplot/internal/scenario"
	"github.com/nvandessel/rateplot/internal/table"
)

// drawRates loads the rate table, flips it so the highest neuron id is at
// the top, and draws the heatmap.
func (r *Renderer) drawRates(sc scenario.Scenario) (*Result, error) {
	path := r.input(sc.Rates)
	rates, err := table.Load(path)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: load rates: %w", sc.Name, err)
	}
	rows, cols := rates.Dims()
	logging.Trace(r.Logger, "loaded rate table", "scenario", sc.Name, "path", path, "rows", rows, "cols", cols)

	scale, err := render.ParseScale(string(sc.Scale))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	lo, hi := render.Bounds(scale, rates)
	r.Trace.Record(sc.Name, "colour_bounds", map[string]any{
		"scale":   string(scale),
		"lo":      lo,
		"hi":      hi,
		"clipped": clippedCells(scale, rates),
	})

	fig, err := render.Heatmap(figureName(sc), rates.ReverseRows(), render.HeatmapOptions{
		Time:           sc.Time,
		NeuronTickStep: sc.NeuronTickStep,
		Scale:          scale,
		Size:           sc.Size,
		DPI:            r.DPI,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	return &Result{
		Scenario: sc.Name,
		Kind:     sc.Kind,
		Inputs:   []string{path},
		Rows:     rows,
		Cols:     cols,
		Min:      finiteOrNaN(lo),
		Max:      finiteOrNaN(hi),
		Figure:   fig,
	}, nil
}

// clippedCells counts values drawn at the floor colour under log scaling.
func clippedCells(scale render.Scale, t *table.Table) int {
	if scale != render.Log {
		return 0
	}
	rows, cols := t.Dims()
	n := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if t.At(i, j) < render.LogFloor {
				n++
			}
		}
	}
	return n
}

// figureName is the output name, or the scenario name for figures that are
// only displayed.
func figureName(sc scenario.Scenario) string {
	if sc.Output != "" {
		return sc.Output
	}
	return sc.Name
}

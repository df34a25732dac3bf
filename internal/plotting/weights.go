package plotting

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/nvandessel/rateplot/internal/render"
	"github.com/nvandessel/rateplot/internal/scenario"
	"github.com/nvandessel/rateplot/internal/table"
	"github.com/nvandessel/rateplot/internal/weights"
)

// drawWeights plots the change of the middle neuron's weights to its
// neighbours within the scenario window.
func (r *Renderer) drawWeights(sc scenario.Scenario) (*Result, error) {
	snapPath := r.input(sc.Weights)
	initPath := r.input(sc.InitialWeights)

	snapshot, err := table.Load(snapPath)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: load weights: %w", sc.Name, err)
	}
	initial, err := table.Load(initPath)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: load initial weights: %w", sc.Name, err)
	}

	diff, err := weights.Diff(snapshot, initial, sc.Middle)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	ys, err := sc.Window.Slice(diff)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	xs := sc.Window.Positions()

	color, err := render.ParseColor(sc.Color)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	lo, hi := floats.Min(ys), floats.Max(ys)
	r.Trace.Record(sc.Name, "weight_change", map[string]any{
		"middle":     sc.Middle,
		"window":     sc.Window.String(),
		"min":        lo,
		"max":        hi,
		"fixed_ylim": sc.YLim != nil,
	})
	r.Logger.Debug("weight change", "scenario", sc.Name, "window", sc.Window.String(), "min", lo, "max", hi)

	fig, err := render.WeightChange(figureName(sc), xs, ys, render.LineOptions{
		XLim:  sc.XLim,
		YLim:  sc.YLim,
		Color: color,
		Size:  sc.Size,
		DPI:   r.DPI,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	rows, cols := snapshot.Dims()
	return &Result{
		Scenario: sc.Name,
		Kind:     sc.Kind,
		Inputs:   []string{snapPath, initPath},
		Rows:     rows,
		Cols:     cols,
		Min:      lo,
		Max:      hi,
		Figure:   fig,
	}, nil
}

// Package plotting turns scenarios into figures: it loads the input tables,
// derives what is plotted, renders, saves, records the render in the history
// and hands the figures to a viewer.
package plotting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/nvandessel/rateplot/internal/catalog"
	"github.com/nvandessel/rateplot/internal/display"
	"github.com/nvandessel/rateplot/internal/logging"
	"github.com/nvandessel/rateplot/internal/pathutil"
	"github.com/nvandessel/rateplot/internal/render"
	"github.com/nvandessel/rateplot/internal/scenario"
)

// Recorder stores render history entries. *catalog.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e catalog.Entry) (int64, error)
}

// Options configures a Renderer.
type Options struct {
	// DataDir is where relative input table paths are resolved.
	DataDir string

	// FigureDir receives saved figures.
	FigureDir string

	// DPI is the raster resolution. Zero uses render.DefaultDPI.
	DPI float64

	// Viewer shows figures. Nil discards them.
	Viewer display.Viewer

	// History records each render. Nil disables recording.
	History Recorder

	// Logger receives operational logs. Nil discards them.
	Logger *slog.Logger

	// Trace records render decisions. Nil disables tracing.
	Trace *logging.RenderTrace
}

// Renderer draws scenarios. It holds no per-render state and may be reused.
type Renderer struct {
	DataDir   string
	FigureDir string
	DPI       float64
	Viewer    display.Viewer
	History   Recorder
	Logger    *slog.Logger
	Trace     *logging.RenderTrace

	now func() time.Time
}

// New returns a Renderer with nil options replaced by no-op defaults.
func New(opts Options) *Renderer {
	r := &Renderer{
		DataDir:   opts.DataDir,
		FigureDir: opts.FigureDir,
		DPI:       opts.DPI,
		Viewer:    opts.Viewer,
		History:   opts.History,
		Logger:    opts.Logger,
		Trace:     opts.Trace,
		now:       time.Now,
	}
	if r.Viewer == nil {
		r.Viewer = display.Nop{}
	}
	if r.Logger == nil {
		r.Logger = logging.Discard()
	}
	if r.DPI <= 0 {
		r.DPI = render.DefaultDPI
	}
	return r
}

// Result describes one rendered scenario.
type Result struct {
	Scenario string        `json:"scenario"`
	Kind     scenario.Kind `json:"kind"`
	Inputs   []string      `json:"inputs"`

	// Path is the saved figure; empty when the scenario does not save.
	Path string `json:"path,omitempty"`

	// Rows and Cols are the shape of the primary input table.
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// Min and Max bound the plotted values: colour bounds for rates, the
	// y values for weights.
	Min float64 `json:"min"`
	Max float64 `json:"max"`

	Duration  time.Duration `json:"duration"`
	HistoryID int64         `json:"history_id,omitempty"`

	Figure *render.Figure `json:"-"`
}

// MarshalJSON replaces non-finite bounds with null.
func (res Result) MarshalJSON() ([]byte, error) {
	type alias Result
	return json.Marshal(struct {
		alias
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	}{alias(res), finitePtr(res.Min), finitePtr(res.Max)})
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Render draws, saves and records sc, then shows the figure. It blocks while
// the viewer does.
func (r *Renderer) Render(ctx context.Context, sc scenario.Scenario) (*Result, error) {
	res, err := r.Draw(ctx, sc)
	if err != nil {
		return nil, err
	}
	if err := r.show(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

// RenderRates renders a rates scenario.
func (r *Renderer) RenderRates(ctx context.Context, sc scenario.Scenario) (*Result, error) {
	if sc.Kind != scenario.KindRates {
		return nil, fmt.Errorf("scenario %s is %s, not rates", sc.Name, sc.Kind)
	}
	return r.Render(ctx, sc)
}

// RenderWeights renders a weights scenario.
func (r *Renderer) RenderWeights(ctx context.Context, sc scenario.Scenario) (*Result, error) {
	if sc.Kind != scenario.KindWeights {
		return nil, fmt.Errorf("scenario %s is %s, not weights", sc.Name, sc.Kind)
	}
	return r.Render(ctx, sc)
}

// RenderAll draws every scenario in order and then shows all figures in a
// single viewer call. It stops at the first failing scenario and returns the
// results drawn so far.
func (r *Renderer) RenderAll(ctx context.Context, scs []scenario.Scenario) ([]*Result, error) {
	results := make([]*Result, 0, len(scs))
	for _, sc := range scs {
		res, err := r.Draw(ctx, sc)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	if err := r.show(ctx, results...); err != nil {
		return results, err
	}
	return results, nil
}

// Draw renders sc, saves it when the scenario names an output and records it
// in the history, without showing it.
func (r *Renderer) Draw(ctx context.Context, sc scenario.Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := r.now()
	log := r.Logger.With("scenario", sc.Name, "kind", string(sc.Kind))
	log.Debug("rendering", "data_dir", r.DataDir)

	var (
		res *Result
		err error
	)
	switch sc.Kind {
	case scenario.KindRates:
		res, err = r.drawRates(sc)
	case scenario.KindWeights:
		res, err = r.drawWeights(sc)
	default:
		err = fmt.Errorf("scenario %s: unsupported kind %q", sc.Name, sc.Kind)
	}
	if err != nil {
		return nil, err
	}

	if sc.Saves() {
		path, err := res.Figure.Save(r.FigureDir)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: save figure: %w", sc.Name, err)
		}
		res.Path = path
		log.Info("saved figure", "path", path)
	}

	res.Duration = r.now().Sub(start)
	r.record(ctx, log, res)
	return res, nil
}

// record stores res in the history. Failures are logged, not returned.
func (r *Renderer) record(ctx context.Context, log *slog.Logger, res *Result) {
	if r.History == nil {
		return
	}
	id, err := r.History.Record(ctx, catalog.Entry{
		Scenario:   res.Scenario,
		Kind:       string(res.Kind),
		Inputs:     res.Inputs,
		OutputPath: res.Path,
		Rows:       res.Rows,
		Cols:       res.Cols,
		Min:        res.Min,
		Max:        res.Max,
		Duration:   res.Duration,
		RenderedAt: r.now(),
	})
	if err != nil {
		log.Warn("failed to record render history", "error", err)
		return
	}
	res.HistoryID = id
}

func (r *Renderer) show(ctx context.Context, results ...*Result) error {
	figs := make([]*render.Figure, 0, len(results))
	for _, res := range results {
		figs = append(figs, res.Figure)
	}
	if len(figs) == 0 {
		return nil
	}
	err := r.Viewer.Show(ctx, figs...)
	if errors.Is(err, context.Canceled) {
		r.Logger.Debug("display cancelled")
		return nil
	}
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// input resolves a table path against the data directory.
func (r *Renderer) input(name string) string {
	return pathutil.Resolve(r.DataDir, name)
}

func finiteOrNaN(v float64) float64 {
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// Package scenario describes the figures rateplot knows how to draw.
//
// A Scenario names its input tables, axis layout, colour scale and output
// file. The built-in catalogue reproduces the figures of each simulation
// phase; configuration files may override or extend it.
package scenario

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nvandessel/rateplot/internal/render"
	"github.com/nvandessel/rateplot/internal/weights"
)

// Kind selects the renderer a scenario uses.
type Kind string

const (
	// KindRates draws a rate table as a heatmap.
	KindRates Kind = "rates"

	// KindWeights draws the weight change of one neuron as a line.
	KindWeights Kind = "weights"
)

// ErrUnknown is returned when a scenario name is not in the catalogue.
var ErrUnknown = errors.New("unknown scenario")

// Scenario is one figure definition. Paths are relative to the data
// directory unless absolute.
type Scenario struct {
	Name        string `json:"name" yaml:"name"`
	Kind        Kind   `json:"kind" yaml:"kind"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Output is the figure file name without extension. Rates figures always
	// have one; an empty Output on a weights figure means it is displayed
	// but not written.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Rates is the rate table for KindRates.
	Rates string `json:"rates,omitempty" yaml:"rates,omitempty"`

	// Scale is the colour scale for KindRates: "linear" or "log".
	Scale render.Scale `json:"scale,omitempty" yaml:"scale,omitempty"`

	// Time fixes the time-axis ticks. Nil uses automatic ticks.
	Time *render.TimeAxis `json:"time,omitempty" yaml:"time,omitempty"`

	// NeuronTickStep places neuron-axis ticks every N rows. Zero uses
	// automatic ticks.
	NeuronTickStep int `json:"neuron_tick_step,omitempty" yaml:"neuron_tick_step,omitempty"`

	// Weights and InitialWeights are the snapshot and baseline tables for
	// KindWeights.
	Weights        string `json:"weights,omitempty" yaml:"weights,omitempty"`
	InitialWeights string `json:"initial_weights,omitempty" yaml:"initial_weights,omitempty"`

	// Middle is the column index of the neuron whose weights are compared.
	Middle int `json:"middle" yaml:"middle"`

	// Window is the inclusive neuron range plotted.
	Window weights.Window `json:"window" yaml:"window"`

	XLim  *render.Limits `json:"xlim,omitempty" yaml:"xlim,omitempty"`
	YLim  *render.Limits `json:"ylim,omitempty" yaml:"ylim,omitempty"`
	Color string         `json:"color,omitempty" yaml:"color,omitempty"`

	Size render.Size `json:"size" yaml:"size"`
}

// Saves reports whether the scenario writes a figure file.
func (s Scenario) Saves() bool {
	return s.Output != ""
}

// Inputs lists the table files the scenario reads.
func (s Scenario) Inputs() []string {
	if s.Kind == KindWeights {
		return []string{s.Weights, s.InitialWeights}
	}
	return []string{s.Rates}
}

// Validate checks that the scenario has what its kind needs.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if _, err := render.ParseScale(string(s.Scale)); err != nil {
		return fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	if _, err := render.ParseColor(s.Color); err != nil {
		return fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	if s.Size.Width < 0 || s.Size.Height < 0 {
		return fmt.Errorf("scenario %s: size must be non-negative", s.Name)
	}

	switch s.Kind {
	case KindRates:
		if s.Rates == "" {
			return fmt.Errorf("scenario %s: rates table is required", s.Name)
		}
		if s.Output == "" {
			return fmt.Errorf("scenario %s: output is required for rates figures", s.Name)
		}
		if s.Time != nil && s.Time.Divisions < 0 {
			return fmt.Errorf("scenario %s: time divisions must be non-negative", s.Name)
		}
		if s.NeuronTickStep < 0 {
			return fmt.Errorf("scenario %s: neuron tick step must be non-negative", s.Name)
		}
	case KindWeights:
		if s.Weights == "" || s.InitialWeights == "" {
			return fmt.Errorf("scenario %s: weights and initial_weights are required", s.Name)
		}
		if s.Middle < 0 {
			return fmt.Errorf("scenario %s: middle column must be non-negative", s.Name)
		}
		if s.Window.Len() == 0 {
			return fmt.Errorf("scenario %s: window %s is empty", s.Name, s.Window)
		}
		if err := checkLimits("xlim", s.XLim); err != nil {
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		if err := checkLimits("ylim", s.YLim); err != nil {
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}
	default:
		return fmt.Errorf("scenario %s: invalid kind %q (valid: rates, weights)", s.Name, s.Kind)
	}
	return nil
}

func checkLimits(name string, l *render.Limits) error {
	if l != nil && l.Max <= l.Min {
		return fmt.Errorf("%s max must exceed min, got [%g, %g]", name, l.Min, l.Max)
	}
	return nil
}

// Catalog is a set of scenarios keyed by name.
type Catalog struct {
	byName map[string]Scenario
}

// NewCatalog builds a catalogue. Later scenarios replace earlier ones with
// the same name.
func NewCatalog(scenarios ...Scenario) *Catalog {
	c := &Catalog{byName: make(map[string]Scenario, len(scenarios))}
	for _, s := range scenarios {
		c.byName[s.Name] = s
	}
	return c
}

// Get returns the named scenario.
func (c *Catalog) Get(name string) (Scenario, error) {
	s, ok := c.byName[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return s, nil
}

// Names returns scenario names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every scenario sorted by name.
func (c *Catalog) All() []Scenario {
	out := make([]Scenario, 0, len(c.byName))
	for _, name := range c.Names() {
		out = append(out, c.byName[name])
	}
	return out
}

// Merge adds or replaces scenarios, validating each one first.
func (c *Catalog) Merge(overrides []Scenario) error {
	for _, s := range overrides {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, s := range overrides {
		c.byName[s.Name] = s
	}
	return nil
}

// Len returns the number of scenarios.
func (c *Catalog) Len() int {
	return len(c.byName)
}

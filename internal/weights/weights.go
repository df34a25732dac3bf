// Package weights derives the synaptic weight change of a single neuron
// between a snapshot weight table and the initial weight table.
package weights

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/nvandessel/rateplot/internal/table"
)

var (
	// ErrShapeMismatch is returned when snapshot and initial tables have a
	// different number of rows.
	ErrShapeMismatch = errors.New("snapshot and initial weight tables differ in row count")

	// ErrColumnRange is returned when the neuron column is outside the table.
	ErrColumnRange = errors.New("neuron column out of range")

	// ErrWindowRange is returned when a window does not fit the vector it slices.
	ErrWindowRange = errors.New("window out of range")
)

// Diff returns snapshot[i][col] - initial[i][col] for every row i. The
// tables may differ in column count as long as both contain col.
func Diff(snapshot, initial *table.Table, col int) ([]float64, error) {
	sr, sc := snapshot.Dims()
	ir, ic := initial.Dims()
	if sr != ir {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, sr, sc, ir, ic)
	}
	if col < 0 || col >= sc || col >= ic {
		return nil, fmt.Errorf("%w: column %d, tables have %d and %d", ErrColumnRange, col, sc, ic)
	}

	diff := snapshot.Col(col)
	floats.Sub(diff, initial.Col(col))
	return diff, nil
}

// Window is an inclusive index range [From, To] over a difference vector.
type Window struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Len returns the number of elements the window covers.
func (w Window) Len() int {
	if w.To < w.From {
		return 0
	}
	return w.To - w.From + 1
}

// Validate checks the window against a vector of length n.
func (w Window) Validate(n int) error {
	if w.From < 0 || w.To < w.From || w.To >= n {
		return fmt.Errorf("%w: [%d, %d] over %d elements", ErrWindowRange, w.From, w.To, n)
	}
	return nil
}

// Slice returns a copy of v[From..To].
func (w Window) Slice(v []float64) ([]float64, error) {
	if err := w.Validate(len(v)); err != nil {
		return nil, err
	}
	out := make([]float64, w.Len())
	copy(out, v[w.From:w.To+1])
	return out, nil
}

// Positions returns the neuron indices covered by the window, as plot x values.
func (w Window) Positions() []float64 {
	out := make([]float64, w.Len())
	for i := range out {
		out[i] = float64(w.From + i)
	}
	return out
}

// String formats the window as "[from, to]".
func (w Window) String() string {
	return fmt.Sprintf("[%d, %d]", w.From, w.To)
}

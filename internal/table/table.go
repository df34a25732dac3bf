// Package table loads the simulator's labelled numeric tables.
//
// A table file has a header record whose first cell names the index column
// and whose remaining cells label the data columns (time steps or neuron
// ids). Each following record is a row label followed by one value per
// column. Values are held in a gonum dense matrix, rows by neuron id.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmpty is returned when a table file has no data rows or columns.
	ErrEmpty = errors.New("table has no data")

	// ErrRagged is returned when a row's width differs from the header.
	ErrRagged = errors.New("row width does not match header")
)

// Table is a labelled 2-D grid of float64 values.
type Table struct {
	// Index is the header cell naming the row-label column.
	Index string

	// RowLabels holds one label per row, in file order.
	RowLabels []string

	// ColLabels holds one label per data column, in file order.
	ColLabels []string

	data *mat.Dense
}

// New builds a table from a dense matrix and its labels.
// Nil label slices are filled with the row or column position.
func New(data *mat.Dense, rowLabels, colLabels []string) (*Table, error) {
	if data == nil {
		return nil, ErrEmpty
	}
	r, c := data.Dims()
	if rowLabels == nil {
		rowLabels = positions(r)
	}
	if colLabels == nil {
		colLabels = positions(c)
	}
	if len(rowLabels) != r {
		return nil, fmt.Errorf("got %d row labels for %d rows", len(rowLabels), r)
	}
	if len(colLabels) != c {
		return nil, fmt.Errorf("got %d column labels for %d columns", len(colLabels), c)
	}
	return &Table{RowLabels: rowLabels, ColLabels: colLabels, data: data}, nil
}

// Load reads a comma-delimited table file.
func Load(path string) (*Table, error) {
	return LoadDelimited(path, ',')
}

// LoadDelimited reads a table file whose fields are separated by comma.
func LoadDelimited(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	t, err := Read(f, comma)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	return t, nil
}

// Read parses a table from r.
func Read(r io.Reader, comma rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	// Width is checked below so ragged rows get a table-specific error.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if len(header) < 2 {
		return nil, ErrEmpty
	}
	cols := len(header) - 1

	t := &Table{
		Index:     strings.TrimSpace(header[0]),
		ColLabels: trimAll(header[1:]),
	}

	var values []float64
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) != cols+1 {
			return nil, fmt.Errorf("line %d: %w: got %d fields, want %d", line, ErrRagged, len(record), cols+1)
		}
		t.RowLabels = append(t.RowLabels, strings.TrimSpace(record[0]))
		for j, field := range record[1:] {
			v, err := parseValue(field)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", line, t.ColLabels[j], err)
			}
			values = append(values, v)
		}
	}

	if len(t.RowLabels) == 0 {
		return nil, ErrEmpty
	}
	t.data = mat.NewDense(len(t.RowLabels), cols, values)
	return t, nil
}

// parseValue accepts the float spellings the simulator writes, including
// empty cells which are read as NaN.
func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Dims returns the number of rows and data columns.
func (t *Table) Dims() (rows, cols int) {
	return t.data.Dims()
}

// At returns the value at row i, column j.
func (t *Table) At(i, j int) float64 {
	return t.data.At(i, j)
}

// Col returns a copy of column j.
func (t *Table) Col(j int) []float64 {
	return mat.Col(nil, j, t.data)
}

// Matrix exposes the underlying values. Callers must not modify it.
func (t *Table) Matrix() mat.Matrix {
	return t.data
}

// ReverseRows returns a new table with row order (and row labels) reversed.
// The receiver is not modified.
func (t *Table) ReverseRows() *Table {
	r, c := t.data.Dims()
	flipped := mat.NewDense(r, c, nil)
	labels := make([]string, r)
	for i := 0; i < r; i++ {
		flipped.SetRow(r-1-i, mat.Row(nil, i, t.data))
		labels[r-1-i] = t.RowLabels[i]
	}
	return &Table{
		Index:     t.Index,
		RowLabels: labels,
		ColLabels: append([]string(nil), t.ColLabels...),
		data:      flipped,
	}
}

// Max returns the largest non-NaN value in the table.
func (t *Table) Max() float64 {
	return t.fold(math.Inf(-1), math.Max)
}

// Min returns the smallest non-NaN value in the table.
func (t *Table) Min() float64 {
	return t.fold(math.Inf(1), math.Min)
}

func (t *Table) fold(init float64, f func(a, b float64) float64) float64 {
	r, c := t.data.Dims()
	acc := init
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := t.data.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			acc = f(acc, v)
		}
	}
	return acc
}

// SameShape reports whether a and b have identical dimensions.
func SameShape(a, b *Table) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	return ar == br && ac == bc
}

func positions(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

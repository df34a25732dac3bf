// Package catalog keeps a history of rendered figures in SQLite.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Entry is one rendered figure.
type Entry struct {
	ID       int64    `json:"id"`
	Scenario string   `json:"scenario"`
	Kind     string   `json:"kind"`
	Inputs   []string `json:"inputs"`

	// OutputPath is empty when the figure was displayed but not saved.
	OutputPath string `json:"output_path,omitempty"`

	// Rows and Cols are the shape of the primary input table.
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// Min and Max bound the plotted values. NaN when unknown.
	Min float64 `json:"min"`
	Max float64 `json:"max"`

	Duration   time.Duration `json:"duration"`
	RenderedAt time.Time     `json:"rendered_at"`
}

// Saved reports whether the render wrote a figure file.
func (e Entry) Saved() bool {
	return e.OutputPath != ""
}

// MarshalJSON replaces non-finite bounds with null.
func (e Entry) MarshalJSON() ([]byte, error) {
	type alias Entry
	return json.Marshal(struct {
		alias
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	}{alias(e), finitePtr(e.Min), finitePtr(e.Max)})
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Store is the render history database.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	dbPath string
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, dbPath: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Record stores an entry and returns its ID. A zero RenderedAt is set to now.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.Scenario == "" {
		return 0, fmt.Errorf("scenario name is required")
	}
	if e.RenderedAt.IsZero() {
		e.RenderedAt = time.Now()
	}
	inputs, err := json.Marshal(e.Inputs)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal inputs: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO renders (scenario, kind, inputs, output_path, rows, cols,
			min_value, max_value, duration_ms, rendered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Scenario, e.Kind, string(inputs), nullString(e.OutputPath), e.Rows, e.Cols,
		nullFloat(e.Min), nullFloat(e.Max), e.Duration.Milliseconds(),
		e.RenderedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("failed to insert render: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return s.query(ctx, `SELECT `+entryColumns+` FROM renders ORDER BY id DESC LIMIT ?`, sqlLimit(limit))
}

// ForScenario returns up to limit entries for one scenario, newest first.
func (s *Store) ForScenario(ctx context.Context, name string, limit int) ([]Entry, error) {
	return s.query(ctx, `SELECT `+entryColumns+` FROM renders WHERE scenario = ? ORDER BY id DESC LIMIT ?`,
		name, sqlLimit(limit))
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

const entryColumns = `id, scenario, kind, inputs, output_path, rows, cols, min_value, max_value, duration_ms, rendered_at`

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query renders: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			inputs     string
			outputPath sql.NullString
			minV, maxV sql.NullFloat64
			durationMS int64
			renderedAt string
		)
		if err := rows.Scan(&e.ID, &e.Scenario, &e.Kind, &inputs, &outputPath, &e.Rows, &e.Cols,
			&minV, &maxV, &durationMS, &renderedAt); err != nil {
			return nil, fmt.Errorf("failed to scan render: %w", err)
		}
		if err := json.Unmarshal([]byte(inputs), &e.Inputs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal inputs for render %d: %w", e.ID, err)
		}
		e.OutputPath = outputPath.String
		e.Min = floatOrNaN(minV)
		e.Max = floatOrNaN(maxV)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if e.RenderedAt, err = time.Parse(time.RFC3339Nano, renderedAt); err != nil {
			return nil, fmt.Errorf("failed to parse rendered_at for render %d: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

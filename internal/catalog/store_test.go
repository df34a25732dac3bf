package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history", "renders.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Scenario: "full-simulation-rates", Kind: "rates", Inputs: []string{"data/standard_sim_neuron_rates_4000.csv"},
			OutputPath: "figures/full_simulation_rates.png", Rows: 500, Cols: 4001, Min: 0, Max: 87.5,
			Duration: 1500 * time.Millisecond, RenderedAt: base},
		{Scenario: "weights-4s", Kind: "weights", Inputs: []string{"data/neuron_weights_4000.csv", "data/weights_initial.csv"},
			Rows: 500, Cols: 500, Min: -0.2, Max: 4.1, RenderedAt: base.Add(time.Minute)},
		{Scenario: "full-simulation-rates", Kind: "rates", Inputs: []string{"data/standard_sim_neuron_rates_4000.csv"},
			OutputPath: "figures/full_simulation_rates.png", Rows: 500, Cols: 4001, Min: 0, Max: 90, RenderedAt: base.Add(2 * time.Minute)},
	}
	for i, e := range entries {
		id, err := s.Record(ctx, e)
		if err != nil {
			t.Fatalf("Record(%d) failed: %v", i, err)
		}
		if id != int64(i+1) {
			t.Errorf("Record(%d) id = %d, want %d", i, id, i+1)
		}
	}

	got, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent returned %d entries, want 3", len(got))
	}
	if got[0].ID != 3 || got[2].ID != 1 {
		t.Errorf("Recent order = [%d %d %d], want newest first", got[0].ID, got[1].ID, got[2].ID)
	}

	first := got[2]
	if first.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v, want 1.5s", first.Duration)
	}
	if !first.RenderedAt.Equal(base) {
		t.Errorf("RenderedAt = %v, want %v", first.RenderedAt, base)
	}
	if first.Rows != 500 || first.Cols != 4001 || first.Max != 87.5 {
		t.Errorf("shape/bounds = %dx%d max %v", first.Rows, first.Cols, first.Max)
	}
	if !first.Saved() {
		t.Error("first render should be saved")
	}

	displayOnly := got[1]
	if displayOnly.Saved() || displayOnly.OutputPath != "" {
		t.Errorf("display-only render has output path %q", displayOnly.OutputPath)
	}
	if len(displayOnly.Inputs) != 2 || displayOnly.Inputs[1] != "data/weights_initial.csv" {
		t.Errorf("Inputs = %v", displayOnly.Inputs)
	}

	limited, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent(2) failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Recent(2) returned %d entries", len(limited))
	}
}

func TestForScenario(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"custom", "weights-3s", "custom"} {
		if _, err := s.Record(ctx, Entry{Scenario: name, Kind: "rates"}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := s.ForScenario(ctx, "custom", 10)
	if err != nil {
		t.Fatalf("ForScenario failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ForScenario returned %d entries, want 2", len(got))
	}
	for _, e := range got {
		if e.Scenario != "custom" {
			t.Errorf("unexpected scenario %q", e.Scenario)
		}
		if e.RenderedAt.IsZero() {
			t.Error("RenderedAt not defaulted")
		}
	}

	none, err := s.ForScenario(ctx, "missing", 10)
	if err != nil {
		t.Fatalf("ForScenario(missing) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("ForScenario(missing) returned %d entries", len(none))
	}
}

func TestRecord_NonFiniteBounds(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Record(ctx, Entry{Scenario: "empty", Kind: "rates", Min: math.NaN(), Max: math.Inf(1)}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	got, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if !math.IsNaN(got[0].Min) || !math.IsNaN(got[0].Max) {
		t.Errorf("bounds = (%v, %v), want NaN", got[0].Min, got[0].Max)
	}

	data, err := json.Marshal(got[0])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"min":null`) {
		t.Errorf("JSON = %s, want null min", data)
	}
}

func TestRecord_RequiresScenario(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Record(context.Background(), Entry{Kind: "rates"}); err == nil {
		t.Error("expected error for entry without scenario")
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renders.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := s.Record(ctx, Entry{Scenario: "custom", Kind: "rates"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	got, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("after reopen got %d entries, want 1", len(got))
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}

func TestInitSchema_RejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renders.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`, SchemaVersion+1); err != nil {
		t.Fatalf("insert version failed: %v", err)
	}
	if err := InitSchema(ctx, db); err == nil {
		t.Error("expected error for newer schema version")
	}
}

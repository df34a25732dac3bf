package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"padded trace", " trace ", LevelTrace},
		{"unknown defaults to info", "verbose", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	for _, s := range []string{"", "info", "Debug", "TRACE", " debug ", "  "} {
		if !ValidLevel(s) {
			t.Errorf("ValidLevel(%q) = false", s)
		}
	}
	if ValidLevel("verbose") {
		t.Error("ValidLevel(verbose) = true")
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		logAtTrace bool
		logAtDebug bool
	}{
		{"info filters debug", "info", false, false},
		{"debug passes debug", "debug", false, true},
		{"trace passes trace", "trace", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)

			Trace(logger, "trace message")
			if got := strings.Contains(buf.String(), "trace message"); got != tt.logAtTrace {
				t.Errorf("trace message visible = %v, want %v (buf: %q)", got, tt.logAtTrace, buf.String())
			}

			buf.Reset()
			logger.Debug("debug message")
			if got := strings.Contains(buf.String(), "debug message"); got != tt.logAtDebug {
				t.Errorf("debug message visible = %v, want %v (buf: %q)", got, tt.logAtDebug, buf.String())
			}

			buf.Reset()
			logger.Info("info message")
			if !strings.Contains(buf.String(), "info message") {
				t.Errorf("info message missing (buf: %q)", buf.String())
			}
		})
	}
}

func TestNewLogger_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	Trace(NewLogger("trace", &buf), "tick", "pos", 500)
	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("trace level not labelled: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("dropped")
}

func TestNewRenderTrace_InfoLevel(t *testing.T) {
	dir := t.TempDir()
	rt := NewRenderTrace(dir, "info")
	if rt != nil {
		t.Error("expected nil RenderTrace at info level")
	}

	rt.Record("custom", "colour_bounds", map[string]any{"lo": 1})
	rt.Close()

	if _, err := os.Stat(filepath.Join(dir, TraceFile)); err == nil {
		t.Error("trace file should not exist at info level")
	}
}

func TestRenderTrace_Record(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	rt := NewRenderTrace(dir, "debug")
	if rt == nil {
		t.Fatal("expected RenderTrace at debug level")
	}

	attrs := map[string]any{"lo": 1.0, "hi": 87.5}
	rt.Record("additional-four-sec-rates", "colour_bounds", attrs)
	rt.Record("weights-4s", "y_range", map[string]any{"min": -1.0, "max": 1.0})
	rt.Close()
	rt.Record("after-close", "ignored", nil)

	if _, ok := attrs["scenario"]; ok {
		t.Error("Record mutated the caller's map")
	}

	data, err := os.ReadFile(filepath.Join(dir, TraceFile))
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("parse line: %v", err)
	}
	if first["scenario"] != "additional-four-sec-rates" || first["step"] != "colour_bounds" {
		t.Errorf("first entry = %v", first)
	}
	if hi, _ := first["hi"].(float64); math.Abs(hi-87.5) > 1e-12 {
		t.Errorf("hi = %v, want 87.5", first["hi"])
	}
	if _, ok := first["time"]; !ok {
		t.Error("expected time field")
	}

	info, err := os.Stat(filepath.Join(dir, TraceFile))
	if err != nil {
		t.Fatalf("stat trace: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, want 600", perm)
	}
}

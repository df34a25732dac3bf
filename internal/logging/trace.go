package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TraceFile is the name of the JSONL file RenderTrace appends to.
const TraceFile = "render-trace.jsonl"

// RenderTrace records the choices made while drawing a figure (colour
// bounds, fitted axis ranges, clipped cells) as one JSON object per line.
// A nil RenderTrace is valid; all methods are no-ops on a nil receiver.
type RenderTrace struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewRenderTrace opens dir/render-trace.jsonl for append. At "info" level,
// or if the file cannot be opened, it returns nil.
func NewRenderTrace(dir string, level string) *RenderTrace {
	if ParseLevel(level) == slog.LevelInfo {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, TraceFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil
	}
	return &RenderTrace{file: f, enc: json.NewEncoder(f)}
}

// Record appends one decision for scenario. The attrs map is not mutated.
func (rt *RenderTrace) Record(scenario, step string, attrs map[string]any) {
	if rt == nil {
		return
	}

	entry := make(map[string]any, len(attrs)+3)
	for k, v := range attrs {
		entry[k] = v
	}
	entry["scenario"] = scenario
	entry["step"] = step
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.file == nil {
		return
	}
	_ = rt.enc.Encode(entry)
}

// Close closes the trace file.
func (rt *RenderTrace) Close() {
	if rt == nil {
		return
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.file != nil {
		rt.file.Close()
		rt.file = nil
	}
}

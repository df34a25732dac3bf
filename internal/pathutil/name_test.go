package pathutil

import (
	"strings"
	"testing"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already safe", "weights_3s", "weights_3s"},
		{"spaces", "run 3 rates", "run_3_rates"},
		{"path separators", "../../etc/passwd", "etc_passwd"},
		{"repeated hyphens", "late---phase", "late-phase"},
		{"repeated underscores", "a___b", "a_b"},
		{"unicode", "rätes", "r_tes"},
		{"keeps inner dots", "sim.v2", "sim.v2"},
		{"empty", "", ""},
		{"only unsafe", "///", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeName(tt.input); got != tt.want {
				t.Errorf("SafeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSafeName_Truncates(t *testing.T) {
	got := SafeName(strings.Repeat("a", 200))
	if len(got) != MaxNameLength {
		t.Errorf("len = %d, want %d", len(got), MaxNameLength)
	}
}

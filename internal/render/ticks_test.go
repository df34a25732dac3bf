package render

import (
	"math"
	"testing"
)

func TestTimeTicks_FullSimulation(t *testing.T) {
	// 500 neurons x 4001 steps (0..4000 ms) over 0..4 s.
	ticks := TimeTicks(4001, TimeAxis{Start: 0, End: 4})

	if len(ticks) != 9 {
		t.Fatalf("len(ticks) = %d, want 9", len(ticks))
	}
	wantLabels := []string{"0", "0.5", "1", "1.5", "2", "2.5", "3", "3.5", "4"}
	for i, tk := range ticks {
		wantValue := float64(i) * 4001 / 8
		if math.Abs(tk.Value-wantValue) > 1e-9 {
			t.Errorf("tick %d value = %v, want %v", i, tk.Value, wantValue)
		}
		if tk.Label != wantLabels[i] {
			t.Errorf("tick %d label = %q, want %q", i, tk.Label, wantLabels[i])
		}
	}
	if ticks[0].Value != 0 || ticks[8].Value != 4001 {
		t.Errorf("ticks span [%v, %v], want [0, 4001]", ticks[0].Value, ticks[8].Value)
	}

	// Even spacing
	gap := ticks[1].Value - ticks[0].Value
	for i := 2; i < len(ticks); i++ {
		if d := ticks[i].Value - ticks[i-1].Value; math.Abs(d-gap) > 1e-9 {
			t.Errorf("gap %d = %v, want %v", i, d, gap)
		}
	}
}

func TestTimeTicks_LaterPhase(t *testing.T) {
	ticks := TimeTicks(4000, TimeAxis{Start: 4, End: 8})
	want := []string{"4", "4.5", "5", "5.5", "6", "6.5", "7", "7.5", "8"}
	for i, tk := range ticks {
		if tk.Label != want[i] {
			t.Errorf("tick %d label = %q, want %q", i, tk.Label, want[i])
		}
	}
}

func TestTimeTicks_CustomDivisions(t *testing.T) {
	ticks := TimeTicks(1000, TimeAxis{Start: 4, End: 5, Divisions: 4})
	if len(ticks) != 5 {
		t.Fatalf("len(ticks) = %d, want 5", len(ticks))
	}
	if ticks[1].Value != 250 || ticks[1].Label != "4.25" {
		t.Errorf("tick 1 = (%v, %q), want (250, \"4.25\")", ticks[1].Value, ticks[1].Label)
	}
}

func TestNeuronTicks(t *testing.T) {
	ticks := NeuronTicks(500, 100)
	wantValues := []float64{0, 100, 200, 300, 400, 500}
	wantLabels := []string{"500", "400", "300", "200", "100", "0"}

	if len(ticks) != len(wantValues) {
		t.Fatalf("len(ticks) = %d, want %d", len(ticks), len(wantValues))
	}
	for i, tk := range ticks {
		if tk.Value != wantValues[i] || tk.Label != wantLabels[i] {
			t.Errorf("tick %d = (%v, %q), want (%v, %q)", i, tk.Value, tk.Label, wantValues[i], wantLabels[i])
		}
	}
}

func TestNeuronTicks_ZeroStep(t *testing.T) {
	if ticks := NeuronTicks(500, 0); ticks != nil {
		t.Errorf("NeuronTicks with zero step = %v, want nil", ticks)
	}
}

func TestDecadeTicks(t *testing.T) {
	ticks := decadeTicks(0, math.Log10(250))
	want := []string{"1", "10", "100"}
	if len(ticks) != len(want) {
		t.Fatalf("len(ticks) = %d, want %d", len(ticks), len(want))
	}
	for i, tk := range ticks {
		if tk.Label != want[i] || tk.Value != float64(i) {
			t.Errorf("tick %d = (%v, %q), want (%d, %q)", i, tk.Value, tk.Label, i, want[i])
		}
	}
}

func TestDecadeTicks_NarrowRange(t *testing.T) {
	// 1..5 Hz spans less than one decade; fall back to default positions.
	ticks := decadeTicks(0, math.Log10(5))
	labelled := 0
	for _, tk := range ticks {
		if tk.Label != "" {
			labelled++
		}
	}
	if labelled < 2 {
		t.Errorf("expected at least 2 labelled ticks, got %d", labelled)
	}
}

func TestFormatTick(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{0.1 + 0.2, "0.3"},
		{4.5, "4.5"},
		{250, "250"},
	}
	for _, tt := range tests {
		if got := formatTick(tt.in); got != tt.want {
			t.Errorf("formatTick(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

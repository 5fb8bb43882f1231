package renderer

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestAuraAlpha(t *testing.T) {
	tests := []struct {
		name  string
		i     int
		size  int
		start float64
		want  float64
	}{
		{"sun inner ring", 0, 30, 0.101, math.Abs(math.Log10(0.101))},
		{"sun mid ring", 15, 30, 0.101, math.Abs(math.Log10(0.5505))},
		{"moon inner ring", 0, 10, 0.7, math.Abs(math.Log10(0.7))},
		{"empty aura", 0, 0, 0.7, 0},
		{"edge", 10, 10, 0.7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AuraAlpha(tt.i, tt.size, tt.start); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("AuraAlpha(%d, %d, %v) = %v, want %v", tt.i, tt.size, tt.start, got, tt.want)
			}
		})
	}
}

func TestAuraAlphaFadesOutward(t *testing.T) {
	prev := math.Inf(1)
	for i := 0; i < 30; i++ {
		a := AuraAlpha(i, 30, 0.101)
		if a >= prev {
			t.Fatalf("ring %d alpha %v not below ring %d alpha %v", i, a, i-1, prev)
		}
		prev = a
	}
}

func TestToScreenFlipsY(t *testing.T) {
	r := &SkyRenderer{size: 450}

	x, y := r.toScreen(r2.Vec{X: 225, Y: 360})
	if x != 225 || y != 90 {
		t.Errorf("expected (225, 90), got (%v, %v)", x, y)
	}
	if _, y := r.toScreen(r2.Vec{}); y != 450 {
		t.Errorf("expected sky origin at the bottom edge, got y=%v", y)
	}
}

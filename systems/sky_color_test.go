package systems

import (
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/sky/config"
)

func colorNear(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) int {
		v := int(x) - int(y)
		if v < 0 {
			return -v
		}
		return v
	}
	return d(a.R, b.R) <= tol && d(a.G, b.G) <= tol && d(a.B, b.B) <= tol && a.A == b.A
}

func TestSkyGradientEndpoints(t *testing.T) {
	g := NewSkyGradient(config.Cfg())

	if g.Steps() != 101 {
		t.Fatalf("expected 101 gradient steps, got %d", g.Steps())
	}

	tests := []struct {
		name   string
		amount float64
		want   color.RGBA
	}{
		{"day", 0, color.RGBA{R: 135, G: 206, B: 250, A: 255}},
		{"sunset", 0.5, color.RGBA{R: 254, G: 172, B: 39, A: 255}},
		{"night", 1, color.RGBA{R: 20, G: 30, B: 37, A: 255}},
		{"below range", -3, color.RGBA{R: 135, G: 206, B: 250, A: 255}},
		{"above range", 7, color.RGBA{R: 20, G: 30, B: 37, A: 255}},
		{"nan", math.NaN(), color.RGBA{R: 135, G: 206, B: 250, A: 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.At(tc.amount); !colorNear(got, tc.want, 1) {
				t.Errorf("At(%v) = %v, want %v", tc.amount, got, tc.want)
			}
		})
	}
}

func TestSkyGradientDeterministicAndQuantized(t *testing.T) {
	g1 := NewSkyGradient(config.Cfg())
	g2 := NewSkyGradient(config.Cfg())

	for i := 0; i <= 1000; i++ {
		amt := float64(i) / 1000
		if g1.At(amt) != g2.At(amt) {
			t.Fatalf("amount %v: gradients disagree", amt)
		}
		if g1.At(amt) != g1.At(amt) {
			t.Fatalf("amount %v: repeated lookup differs", amt)
		}
	}

	// 101 steps: amounts within the same hundredth share a color
	if g1.At(0.501) != g1.At(0.5) {
		t.Errorf("expected 0.501 and 0.5 to quantize to the same step")
	}
	if g1.At(0.2) == g1.At(0.8) {
		t.Errorf("expected distinct colors for 0.2 and 0.8")
	}
}

func TestSkyGradientMonotonicSegments(t *testing.T) {
	g := NewSkyGradient(config.Cfg())
	n := g.Steps() - 1

	channels := func(c color.RGBA) [3]int { return [3]int{int(c.R), int(c.G), int(c.B)} }

	checkSegment := func(from, to int) {
		start := channels(g.At(float64(from) / float64(n)))
		end := channels(g.At(float64(to) / float64(n)))
		prev := start
		for i := from + 1; i <= to; i++ {
			cur := channels(g.At(float64(i) / float64(n)))
			for ch := 0; ch < 3; ch++ {
				dir := end[ch] - start[ch]
				step := cur[ch] - prev[ch]
				if dir > 0 && step < 0 || dir < 0 && step > 0 {
					t.Fatalf("step %d channel %d moves against the segment direction (%d -> %d)", i, ch, prev[ch], cur[ch])
				}
			}
			prev = cur
		}
	}

	checkSegment(0, n/2)
	checkSegment(n/2, n)
}

func TestBlendLinear(t *testing.T) {
	day := rgbColor([3]uint8{135, 206, 250})
	night := rgbColor([3]uint8{20, 30, 37})

	if got := blendLinear(day, night, 0); got != day {
		t.Errorf("t=0 should return the start stop, got %v", got)
	}
	if got := blendLinear(day, night, 1); got != night {
		t.Errorf("t=1 should return the end stop, got %v", got)
	}

	// Halfway in linear light is brighter than the sRGB midpoint.
	mid := blendLinear(day, night, 0.5)
	lr1, _, _ := day.LinearRgb()
	lr2, _, _ := night.LinearRgb()
	r, _, _ := mid.LinearRgb()
	if math.Abs(r-(lr1+lr2)/2) > 1e-9 {
		t.Errorf("expected linear midpoint %v, got %v", (lr1+lr2)/2, r)
	}
	if mid.R <= (day.R+night.R)/2 {
		t.Errorf("expected linear blend red %v above sRGB midpoint %v", mid.R, (day.R+night.R)/2)
	}
}

func TestTruncRGBA(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{0.999 / 255, 0},
		{1.999 / 255, 1},
		{1, 255},
	}
	for _, tc := range tests {
		got := truncRGBA(colorful.Color{R: tc.in, G: tc.in, B: tc.in})
		if got.R != tc.want || got.G != tc.want || got.B != tc.want || got.A != 255 {
			t.Errorf("truncRGBA(%v) = %v, want channel %d", tc.in, got, tc.want)
		}
	}
}

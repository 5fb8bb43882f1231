package systems

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sky/config"
)

// MoonSpot is one speckle of the moon surface texture.
type MoonSpot struct {
	Pos   r2.Vec
	Alpha float64
}

// MoonTexture is the precomputed, read-only speckle texture of the moon.
type MoonTexture struct {
	Center r2.Vec
	Radius int

	spots []MoonSpot
}

// NewMoonTexture samples billow noise over the moon disc once.
// It fails if the number of generated spots does not match the disc size.
func NewMoonTexture(cfg *config.Config) (*MoonTexture, error) {
	m := cfg.Moon
	billow := NewBillow(m.Seed, DefaultBillowOctaves, m.Persistence)
	noise := NewExponent(billow)

	center := r2.Vec{X: cfg.Derived.MoonX, Y: cfg.Derived.MoonY}
	r := cfg.Derived.MoonRadius

	spots := make([]MoonSpot, 0, 4*r*r)
	for i := -r; i < r; i++ {
		for j := -r; j < r; j++ {
			// Integer offsets keep the disc test exact on the boundary.
			if i*i+j*j >= r*r {
				continue
			}
			p := r2.Vec{X: center.X - float64(i), Y: center.Y - float64(j)}
			alpha := math.Abs(noise.Eval2(p.X*m.SampleScale, p.Y*m.SampleScale)) * m.Strength
			spots = append(spots, MoonSpot{Pos: p, Alpha: spotAlpha(alpha, m.Cutoff, m.MaxAlpha)})
		}
	}

	if want := discLatticeCount(r); len(spots) != want {
		return nil, fmt.Errorf("moon texture has %d spots, expected %d for radius %d", len(spots), want, r)
	}

	return &MoonTexture{Center: center, Radius: r, spots: spots}, nil
}

// spotAlpha drops faint samples and remaps the rest onto [0, maxAlpha].
func spotAlpha(a, cutoff, maxAlpha float64) float64 {
	if math.IsNaN(a) || a < cutoff {
		return 0
	}
	return clampFloat(mapRange(a, cutoff, 1, 0, maxAlpha), 0, maxAlpha)
}

// discLatticeCount counts integer offsets (i, j) in [-r, r)² strictly inside radius r.
func discLatticeCount(r int) int {
	n := 0
	for i := -r; i < r; i++ {
		for j := -r; j < r; j++ {
			if i*i+j*j < r*r {
				n++
			}
		}
	}
	return n
}

// Spots returns a copy of the texture.
func (t *MoonTexture) Spots() []MoonSpot {
	out := make([]MoonSpot, len(t.spots))
	copy(out, t.spots)
	return out
}

// Len returns the number of spots.
func (t *MoonTexture) Len() int { return len(t.spots) }

// Each calls fn for every spot without copying.
func (t *MoonTexture) Each(fn func(MoonSpot)) {
	for _, s := range t.spots {
		fn(s)
	}
}

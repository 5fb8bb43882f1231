package systems

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sky/components"
	"github.com/pthm-cable/sky/config"
)

// StarField is the fixed set of stars scattered over the sky.
// Star positions are sampled once at spawn and never mutated; only the
// per-frame alpha changes with the time of day.
type StarField struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Star]
	filter *ecs.Filter2[components.Position, components.Star]

	count       int
	settingFade float64
}

// NewStarField spawns the configured number of stars uniformly over the screen.
// It fails if the world does not end up holding exactly that many stars.
func NewStarField(cfg *config.Config, rng *rand.Rand) (*StarField, error) {
	world := ecs.NewWorld()
	sf := &StarField{
		world:       world,
		mapper:      ecs.NewMap2[components.Position, components.Star](world),
		filter:      ecs.NewFilter2[components.Position, components.Star](world),
		count:       cfg.Stars.Count,
		settingFade: cfg.Stars.SettingFade,
	}

	size := float32(cfg.Derived.SizeF)
	for i := 0; i < cfg.Stars.Count; i++ {
		pos := components.Position{X: rng.Float32() * size, Y: rng.Float32() * size}
		star := components.Star{Index: i}
		sf.mapper.NewEntity(&pos, &star)
	}

	if n := sf.Len(); n != cfg.Stars.Count {
		return nil, fmt.Errorf("star field holds %d stars, expected %d", n, cfg.Stars.Count)
	}
	return sf, nil
}

// Len counts the stars in the world.
func (sf *StarField) Len() int {
	n := 0
	query := sf.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// StarAlpha returns star visibility for the current sun state.
// Stars fade out while the sun rises, only start fading in during the last
// stretch of the sunset, and are fully visible at night.
func StarAlpha(sun *Sun, settingFade float64) float64 {
	if amt, ok := sun.RisingAmount(); ok {
		return 1 - amt
	}
	if amt, ok := sun.SettingAmount(); ok {
		if amt > settingFade {
			return clamp01(mapRange(amt, settingFade, 1, 0, 1))
		}
		return 0
	}
	if sun.HasSet() {
		return 1
	}
	return 0
}

// Update rederives every star's alpha from the sun. Returns the alpha applied.
func (sf *StarField) Update(sun *Sun) float64 {
	alpha := StarAlpha(sun, sf.settingFade)

	query := sf.filter.Query()
	for query.Next() {
		_, star := query.Get()
		star.Alpha = float32(alpha)
	}
	return alpha
}

// StarPoint is a read-only view of one star.
type StarPoint struct {
	Pos   r2.Vec
	Alpha float64
}

// Points returns the stars in spawn order.
func (sf *StarField) Points() []StarPoint {
	out := make([]StarPoint, sf.count)
	query := sf.filter.Query()
	for query.Next() {
		pos, star := query.Get()
		out[star.Index] = StarPoint{
			Pos:   r2.Vec{X: float64(pos.X), Y: float64(pos.Y)},
			Alpha: float64(star.Alpha),
		}
	}
	return out
}

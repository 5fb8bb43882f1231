package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sky/config"
)

// Sun tracks the sun along its circular day/night trajectory.
// Its position is recomputed from the frame count on every Advance, so the
// whole state is reproducible from a single integer.
type Sun struct {
	Pos r2.Vec

	radius     float64
	aura       float64
	width      float64
	start      r2.Vec
	pivot      r2.Vec
	cycleSpeed float64 // degrees per frame
}

// NewSun creates a sun at its configured start position.
func NewSun(cfg *config.Config) *Sun {
	start := r2.Vec{X: cfg.Derived.SunStartX, Y: cfg.Derived.SunStartY}
	return &Sun{
		Pos:        start,
		radius:     float64(cfg.Sun.Radius),
		aura:       float64(cfg.Sun.AuraSize),
		width:      cfg.Derived.SizeF,
		start:      start,
		pivot:      r2.Vec{X: cfg.Derived.PivotX, Y: cfg.Derived.PivotY},
		cycleSpeed: cfg.Sun.CycleSpeed,
	}
}

// Radius returns the sun disc radius.
func (s *Sun) Radius() float64 { return s.radius }

// Period returns the number of frames in one full revolution.
func (s *Sun) Period() float64 {
	return 360 / s.cycleSpeed
}

// PositionAt returns the sun position after the given number of frames.
// Rotation is clockwise (negative angle) around the pivot.
func (s *Sun) PositionAt(frames float64) r2.Vec {
	angle := -degToRad(math.Mod(frames, s.Period()) * s.cycleSpeed)
	return r2.Rotate(s.start, angle, s.pivot)
}

// Advance moves the sun to its position for the given frame count.
func (s *Sun) Advance(frames uint64) {
	s.Pos = s.PositionAt(float64(frames))
}

// HasSet reports whether the sun is out of the visible sky: below the
// horizon, or with its disc past either horizontal screen edge.
func (s *Sun) HasSet() bool {
	p := s.Pos
	visible := p.X-s.radius > 0 && p.Y > 0 && p.X-(s.radius+s.aura) < s.width
	return !visible
}

// RisingAmount returns how far the sun has risen over the left edge.
// Only defined while the sun is set and its left edge is at or past x=0.
func (s *Sun) RisingAmount() (float64, bool) {
	edgeX := s.Pos.X - s.radius
	if edgeX > 0 || !s.HasSet() {
		return 0, false
	}
	return logEase(mapRange(edgeX, -2*s.radius, 0, 0, 1)), true
}

// SettingAmount returns how far the sun has set over the right edge.
// Only defined while the sun has not set and its right edge touches the screen edge.
func (s *Sun) SettingAmount() (float64, bool) {
	edgeX := s.Pos.X + s.radius
	if edgeX < s.width || s.HasSet() {
		return 0, false
	}
	return logEase(mapRange(edgeX, s.width, s.width+2*s.radius, 0, 1)), true
}

// CycleAmount maps the sun state onto the day/night axis:
// 0 is full day, 1 is full night.
func CycleAmount(s *Sun) float64 {
	if amt, ok := s.RisingAmount(); ok {
		return 1 - amt
	}
	if amt, ok := s.SettingAmount(); ok {
		return amt
	}
	if s.HasSet() {
		return 1
	}
	return 0
}

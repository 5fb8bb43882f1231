package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sky/config"
	"github.com/pthm-cable/sky/systems"
)

// Palette for the bodies drawn over the sky.
var (
	auraColor      = rl.NewColor(220, 220, 220, 255) // gainsboro
	moonNightColor = rl.NewColor(255, 248, 220, 255) // cornsilk
	moonDayColor   = rl.NewColor(215, 239, 253, 255)
	spotNightColor = rl.NewColor(169, 169, 169, 255)
	spotDayColor   = rl.NewColor(143, 198, 232, 255)
	cloudDayColor  = rl.NewColor(255, 255, 255, 255)
	cloudNightTint = rl.NewColor(128, 128, 128, 255)
)

const (
	sunAuraStart  = 0.101
	moonAuraStart = 0.7
	starAuraStart = 0.8
	moonSpotSize  = 1.5
	daySpotDim    = 0.75
)

// SkyFrame is everything the renderer needs for one frame.
// Positions are in sky space: origin bottom-left, y up.
type SkyFrame struct {
	Sky    color.RGBA
	Sun    r2.Vec
	SunSet bool
	Stars  []systems.StarPoint
	Moon   *systems.MoonTexture
	Clouds *systems.DensityGrid
}

// SkyRenderer draws a SkyFrame with raylib immediate-mode primitives.
type SkyRenderer struct {
	size      float32
	cellSize  float32
	sunRadius float32
	sunAura   int
	moonAura  int
	starSize  float32
	starAura  int
}

// NewSkyRenderer creates a renderer sized from cfg.
func NewSkyRenderer(cfg *config.Config) *SkyRenderer {
	return &SkyRenderer{
		size:      float32(cfg.Derived.SizeF),
		cellSize:  float32(cfg.Screen.CellSize),
		sunRadius: float32(cfg.Sun.Radius),
		sunAura:   cfg.Sun.AuraSize,
		moonAura:  cfg.Derived.MoonRadius / 2,
		starSize:  float32(cfg.Stars.Radius),
		starAura:  cfg.Stars.AuraSize,
	}
}

// Draw renders the frame. Must be called between BeginDrawing and EndDrawing.
func (r *SkyRenderer) Draw(f SkyFrame) {
	rl.ClearBackground(rl.NewColor(f.Sky.R, f.Sky.G, f.Sky.B, 255))

	if !f.SunSet {
		r.drawSun(f.Sun)
	} else if f.Moon != nil {
		r.drawMoonAura(f.Moon)
	}

	r.drawStars(f.Stars)

	if f.Moon != nil {
		r.drawMoon(f.Moon, f.SunSet)
	}
	if f.Clouds != nil {
		r.drawClouds(f.Clouds, f.SunSet)
	}
}

func (r *SkyRenderer) drawSun(pos r2.Vec) {
	x, y := r.toScreen(pos)
	rl.DrawCircleV(rl.NewVector2(x, y), r.sunRadius, rl.White)
	r.drawAura(x, y, r.sunRadius, r.sunAura, sunAuraStart, 1)
}

func (r *SkyRenderer) drawMoonAura(m *systems.MoonTexture) {
	x, y := r.toScreen(m.Center)
	r.drawAura(x, y, float32(m.Radius), r.moonAura, moonAuraStart, 1)
}

func (r *SkyRenderer) drawStars(stars []systems.StarPoint) {
	for _, s := range stars {
		if s.Alpha <= 0 {
			continue
		}
		x, y := r.toScreen(s.Pos)
		rl.DrawCircleV(rl.NewVector2(x, y), r.starSize, rl.Fade(rl.White, float32(s.Alpha)))
		r.drawAura(x, y, r.starSize, r.starAura, starAuraStart, s.Alpha)
	}
}

func (r *SkyRenderer) drawMoon(m *systems.MoonTexture, night bool) {
	body, spots := moonDayColor, spotDayColor
	if night {
		body, spots = moonNightColor, spotNightColor
	}

	x, y := r.toScreen(m.Center)
	rl.DrawCircleV(rl.NewVector2(x, y), float32(m.Radius), body)

	m.Each(func(s systems.MoonSpot) {
		alpha := s.Alpha
		if !night {
			alpha *= daySpotDim
		}
		if alpha <= 0 {
			return
		}
		sx, sy := r.toScreen(s.Pos)
		rl.DrawCircleV(rl.NewVector2(sx, sy), moonSpotSize, rl.Fade(spots, float32(alpha)))
	})
}

func (r *SkyRenderer) drawClouds(grid *systems.DensityGrid, night bool) {
	tint := cloudDayColor
	if night {
		tint = cloudNightTint
	}
	radius := r.cellSize * 3

	for x := 0; x < grid.N; x++ {
		col := grid.Column(x)
		for y, d := range col {
			if d <= 0 {
				continue
			}
			sx, sy := r.toScreen(r2.Vec{X: float64(x) * float64(r.cellSize), Y: float64(y) * float64(r.cellSize)})
			rl.DrawCircleV(rl.NewVector2(sx, sy), radius, rl.Fade(tint, float32(d)))
		}
	}
}

// drawAura strokes size one-pixel rings outside radius with a log falloff.
func (r *SkyRenderer) drawAura(x, y, radius float32, size int, start, scale float64) {
	center := rl.NewVector2(x, y)
	for i := 0; i < size; i++ {
		alpha := AuraAlpha(i, size, start) * scale
		if alpha <= 0 {
			continue
		}
		ring := radius + float32(i)
		rl.DrawRing(center, ring, ring+1, 0, 360, 48, rl.Fade(auraColor, float32(alpha)))
	}
}

// toScreen flips sky space into raylib's y-down screen space.
func (r *SkyRenderer) toScreen(p r2.Vec) (float32, float32) {
	return float32(p.X), r.size - float32(p.Y)
}

// AuraAlpha is the opacity of ring i out of size, starting at start and
// fading to zero at the outer edge.
func AuraAlpha(i, size int, start float64) float64 {
	if size <= 0 {
		return 0
	}
	t := start + (1-start)*float64(i)/float64(size)
	if t <= 0 {
		return 0
	}
	return math.Abs(math.Log10(t))
}

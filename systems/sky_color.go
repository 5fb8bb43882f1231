package systems

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/sky/config"
)

// SkyGradient maps a day/night cycle amount onto a sky color.
// The day → sunset → night gradient is blended in linear RGB and sampled at
// a fixed number of evenly spaced positions, precomputed once.
type SkyGradient struct {
	table []color.RGBA
}

// NewSkyGradient builds the quantized gradient from the configured stops.
func NewSkyGradient(cfg *config.Config) *SkyGradient {
	return newSkyGradient(
		rgbColor(cfg.Sky.Day),
		rgbColor(cfg.Sky.Sunset),
		rgbColor(cfg.Sky.Night),
		cfg.Sky.Steps,
	)
}

func newSkyGradient(day, sunset, night colorful.Color, steps int) *SkyGradient {
	if steps < 2 {
		steps = 2
	}
	g := &SkyGradient{table: make([]color.RGBA, steps)}
	for i := range g.table {
		pos := float64(i) / float64(steps-1)
		var c colorful.Color
		if pos <= 0.5 {
			c = blendLinear(day, sunset, pos*2)
		} else {
			c = blendLinear(sunset, night, (pos-0.5)*2)
		}
		g.table[i] = truncRGBA(c.Clamped())
	}
	return g
}

// blendLinear interpolates two colors in linear RGB. The stops themselves
// are returned as given so they survive the round trip unchanged.
func blendLinear(from, to colorful.Color, t float64) colorful.Color {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	r1, g1, b1 := from.LinearRgb()
	r2, g2, b2 := to.LinearRgb()
	return colorful.LinearRgb(r1+t*(r2-r1), g1+t*(g2-g1), b1+t*(b2-b1))
}

// truncRGBA converts a clamped color to 8 bits per channel, truncating.
func truncRGBA(c colorful.Color) color.RGBA {
	return color.RGBA{R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255), A: 255}
}

// At returns the sky color for a cycle amount in [0, 1]
// (0 = full day, 1 = full night). Out-of-range and NaN amounts are clamped.
func (g *SkyGradient) At(amount float64) color.RGBA {
	idx := int(clamp01(amount) * float64(len(g.table)-1))
	return g.table[idx]
}

// Steps returns the number of quantized gradient positions.
func (g *SkyGradient) Steps() int { return len(g.table) }

// rgbColor converts an 8-bit sRGB triple to a colorful.Color.
func rgbColor(c [3]uint8) colorful.Color {
	return colorful.Color{
		R: float64(c[0]) / 255,
		G: float64(c[1]) / 255,
		B: float64(c[2]) / 255,
	}
}

// RGBA converts an 8-bit sRGB triple to an opaque color.RGBA.
func RGBA(c [3]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

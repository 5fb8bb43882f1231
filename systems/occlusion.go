package systems

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sky/config"
)

// Occlusion darkens the sky while clouds cover the sun disc.
type Occlusion struct {
	cellSize    float64
	maxCoverage float64
	maxDarken   float64
	night       color.RGBA
}

// NewOcclusion creates an occlusion darkener from config.
func NewOcclusion(cfg *config.Config) *Occlusion {
	return &Occlusion{
		cellSize:    float64(cfg.Screen.CellSize),
		maxCoverage: cfg.Clouds.MaxCoverage,
		maxDarken:   cfg.Clouds.MaxDarken,
		night:       RGBA(cfg.Sky.Night),
	}
}

// Coverage sums the density of every cell whose screen point lies within
// radius of center.
func (o *Occlusion) Coverage(grid *DensityGrid, center r2.Vec, radius float64) float64 {
	// Only columns/rows whose points can fall inside the disc are visited.
	x0 := max(int(math.Floor((center.X-radius)/o.cellSize)), 0)
	x1 := min(int(math.Ceil((center.X+radius)/o.cellSize)), grid.N-1)
	y0 := max(int(math.Floor((center.Y-radius)/o.cellSize)), 0)
	y1 := min(int(math.Ceil((center.Y+radius)/o.cellSize)), grid.N-1)

	var covered float64
	for x := x0; x <= x1; x++ {
		col := grid.Column(x)
		for y := y0; y <= y1; y++ {
			d := col[y]
			if d == 0 {
				continue
			}
			p := r2.Vec{X: float64(x) * o.cellSize, Y: float64(y) * o.cellSize}
			if r2.Norm(r2.Sub(p, center)) <= radius {
				covered += d
			}
		}
	}
	return covered
}

// Factor maps summed coverage onto a darkening factor in [0, MaxDarken].
// Negative and NaN coverage darken nothing.
func (o *Occlusion) Factor(coverage float64) float64 {
	if math.IsNaN(coverage) || coverage <= 0 {
		return 0
	}
	return clampFloat(mapRange(coverage, 0, o.maxCoverage, 0, o.maxDarken), 0, o.maxDarken)
}

// Shade is the outcome of one occlusion pass.
type Shade struct {
	Color    color.RGBA
	Coverage float64 // Density summed under the sun disc
	Factor   float64 // Darkening applied to the sky color
}

// Apply returns the background color for this frame. A set sun bypasses the
// computation and yields the fixed night color with zero coverage.
func (o *Occlusion) Apply(sky color.RGBA, grid *DensityGrid, sun *Sun) Shade {
	if sun.HasSet() {
		return Shade{Color: o.night}
	}
	coverage := o.Coverage(grid, sun.Pos, sun.Radius())
	factor := o.Factor(coverage)
	return Shade{Color: DarkenBy(sky, factor), Coverage: coverage, Factor: factor}
}

// DarkenBy multiplies each color channel by (1 - factor). Alpha is kept.
func DarkenBy(c color.RGBA, factor float64) color.RGBA {
	f := 1 - factor
	return color.RGBA{
		R: scaleChannel(c.R, f),
		G: scaleChannel(c.G, f),
		B: scaleChannel(c.B, f),
		A: c.A,
	}
}

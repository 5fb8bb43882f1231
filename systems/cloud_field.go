package systems

import (
	"math"

	"github.com/pthm-cable/sky/config"
)

// DensityGrid is a square grid of cloud densities in [0, 1].
// Cells are stored x-major: the density of column x, row y is Cells[x*N+y].
type DensityGrid struct {
	N     int
	Cells []float64
}

// NewDensityGrid allocates an n×n grid of zero density.
func NewDensityGrid(n int) *DensityGrid {
	return &DensityGrid{N: n, Cells: make([]float64, n*n)}
}

// At returns the density of cell (x, y).
func (g *DensityGrid) At(x, y int) float64 {
	return g.Cells[x*g.N+y]
}

// Column returns the densities of column x.
func (g *DensityGrid) Column(x int) []float64 {
	return g.Cells[x*g.N : (x+1)*g.N]
}

// Mean returns the average density over the whole grid.
func (g *DensityGrid) Mean() float64 {
	if len(g.Cells) == 0 {
		return 0
	}
	var sum float64
	for _, d := range g.Cells {
		sum += d
	}
	return sum / float64(len(g.Cells))
}

// CloudField regenerates the cloud density grid every frame from billow
// noise drifting with the wind. Columns are independent and are filled in
// parallel; the grid returned by Generate is complete.
type CloudField struct {
	noise Source

	n            int
	cutoff       float64
	scaling      float64
	windSpeed    float64
	timeScale    float64
	speedup      float64
	spatialScale float64
	xOffset      float64
	yOffset      float64

	// Double buffer: Generate fills back, then swaps it to front.
	front, back *DensityGrid

	pool *columnPool
}

// NewCloudField creates a cloud field sized to the configured grid.
func NewCloudField(cfg *config.Config) *CloudField {
	c := cfg.Clouds
	billow := NewBillow(c.Seed, c.Octaves, DefaultBillowPersistence)
	billow.Gain = c.NoiseGain

	n := cfg.Derived.GridSize
	cf := &CloudField{
		noise:        NewExponent(billow),
		n:            n,
		cutoff:       c.Cutoff,
		scaling:      c.Scaling,
		windSpeed:    c.WindSpeed,
		timeScale:    c.TimeScale,
		speedup:      cfg.Speedup.Factor,
		spatialScale: c.SpatialScale,
		xOffset:      c.XOffset,
		yOffset:      c.YOffset,
		front:        NewDensityGrid(n),
		back:         NewDensityGrid(n),
	}
	cf.pool = newColumnPool(cf.computeColumns)
	return cf
}

// Grid returns the most recently generated grid.
func (cf *CloudField) Grid() *DensityGrid { return cf.front }

// TimeOffset returns the noise time for a frame. Fast-forward scales the
// offset rather than accumulating it, so it stays a pure function of frame.
func (cf *CloudField) TimeOffset(frame uint64, speedup bool) float64 {
	delta := float64(frame) * cf.timeScale
	if speedup {
		delta *= cf.speedup
	}
	return delta
}

// Generate recomputes the whole grid for the given frame.
func (cf *CloudField) Generate(frame uint64, speedup bool) *DensityGrid {
	return cf.GenerateAt(cf.TimeOffset(frame, speedup))
}

// GenerateAt recomputes the whole grid for a noise time offset.
func (cf *CloudField) GenerateAt(delta float64) *DensityGrid {
	cf.pool.run(cf.n, delta, cf.back)
	cf.front, cf.back = cf.back, cf.front
	return cf.front
}

// computeColumns fills columns [x0, x1) of dst. Safe to run concurrently
// for disjoint ranges.
func (cf *CloudField) computeColumns(x0, x1 int, delta float64, dst *DensityGrid) {
	for x := x0; x < x1; x++ {
		sx := float64(x)/cf.spatialScale - (delta+cf.xOffset)*cf.windSpeed
		col := dst.Column(x)
		for y := range col {
			sy := float64(y)/cf.spatialScale - cf.yOffset
			col[y] = Density(math.Abs(cf.noise.Eval3(sx, sy, delta)), cf.cutoff, cf.scaling)
		}
	}
}

// Density thresholds a raw noise magnitude: anything below cutoff is empty
// sky, the rest is remapped from [cutoff, scaling] onto [0, 1].
// NaN is treated as empty sky.
func Density(raw, cutoff, scaling float64) float64 {
	if math.IsNaN(raw) || raw < cutoff {
		return 0
	}
	return clamp01(mapRange(raw, cutoff, scaling, 0, 1))
}

// Close stops the worker goroutines.
func (cf *CloudField) Close() {
	cf.pool.stop()
}

package telemetry

// FrameSample is what the game reports after each frame update.
type FrameSample struct {
	Frame       uint64
	SunX, SunY  float64
	Set         bool
	CycleAmount float64
	CloudCover  float64 // Mean density over the whole grid
	SunCoverage float64 // Density summed under the sun disc
	Darken      float64
	StarAlpha   float64
}

// Collector accumulates frame samples and produces WindowStats.
type Collector struct {
	windowFrames uint64
	windowStart  uint64

	last        FrameSample
	nightFrames int
	cycle       []float64
	cover       []float64
	sunCoverage []float64
	darken      []float64
	starAlpha   []float64
}

// NewCollector creates a collector flushing every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	n := windowFrames
	return &Collector{
		windowFrames: uint64(windowFrames),
		cycle:        make([]float64, 0, n),
		cover:        make([]float64, 0, n),
		sunCoverage:  make([]float64, 0, n),
		darken:       make([]float64, 0, n),
		starAlpha:    make([]float64, 0, n),
	}
}

// Record adds one frame to the current window.
func (c *Collector) Record(s FrameSample) {
	c.last = s
	if s.Set {
		c.nightFrames++
	}
	c.cycle = append(c.cycle, s.CycleAmount)
	c.cover = append(c.cover, s.CloudCover)
	c.sunCoverage = append(c.sunCoverage, s.SunCoverage)
	c.darken = append(c.darken, s.Darken)
	c.starAlpha = append(c.starAlpha, s.StarAlpha)
}

// Last returns the most recently recorded sample.
func (c *Collector) Last() FrameSample { return c.last }

// ShouldFlush returns true once the window has run its length.
func (c *Collector) ShouldFlush(frame uint64) bool {
	return frame-c.windowStart >= c.windowFrames
}

// Flush produces a WindowStats and resets the window at frame.
func (c *Collector) Flush(frame uint64) WindowStats {
	n := len(c.cycle)
	cover := Summarize(c.cover)
	sunCov := Summarize(c.sunCoverage)
	darken := Summarize(c.darken)

	stats := WindowStats{
		WindowStartFrame: c.windowStart,
		WindowEndFrame:   frame,
		Frames:           n,
		SunX:             c.last.SunX,
		SunY:             c.last.SunY,
		CycleMean:        Summarize(c.cycle).Mean,
		CloudCoverMean:   cover.Mean,
		CloudCoverStd:    cover.Std,
		CloudCoverP90:    cover.P90,
		SunCoverageMean:  sunCov.Mean,
		SunCoverageMax:   sunCov.Max,
		DarkenMean:       darken.Mean,
		DarkenMax:        darken.Max,
		StarAlphaMean:    Summarize(c.starAlpha).Mean,
	}
	if n > 0 {
		stats.NightFraction = float64(c.nightFrames) / float64(n)
	}

	c.windowStart = frame
	c.nightFrames = 0
	c.cycle = c.cycle[:0]
	c.cover = c.cover[:0]
	c.sunCoverage = c.sunCoverage[:0]
	c.darken = c.darken[:0]
	c.starAlpha = c.starAlpha[:0]

	return stats
}

// Pending returns the number of frames recorded since the last flush.
func (c *Collector) Pending() int {
	return len(c.cycle)
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() uint64 {
	return c.windowFrames
}

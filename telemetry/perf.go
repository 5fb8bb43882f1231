package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame update, in execution order.
const (
	PhaseSun       = "sun"
	PhaseSkyColor  = "sky_color"
	PhaseClouds    = "clouds"
	PhaseOcclusion = "occlusion"
	PhaseStars     = "stars"
)

// Phases lists every frame phase in execution order.
var Phases = []string{PhaseSun, PhaseSkyColor, PhaseClouds, PhaseOcclusion, PhaseStars}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks update timings over a rolling window of frames.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Wall clock between Draw calls (graphics mode)
	lastDrawTime time.Time
	drawInterval time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a frame update.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase closes the running phase and starts timing the next one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes the frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordDraw records the interval since the previous draw.
func (p *PerfCollector) RecordDraw() {
	now := time.Now()
	if !p.lastDrawTime.IsZero() {
		p.drawInterval = now.Sub(p.lastDrawTime)
	}
	p.lastDrawTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Average duration and share of the frame per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	UpdatesPerSecond float64

	DrawInterval time.Duration
	FPS          float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.drawInterval > 0 {
		fps = float64(time.Second) / float64(p.drawInterval)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:     make(map[string]time.Duration),
			PhasePct:     make(map[string]float64),
			DrawInterval: p.drawInterval,
			FPS:          fps,
		}
	}

	var total, minFrame, maxFrame time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration

		if i == 0 || s.FrameDuration < minFrame {
			minFrame = s.FrameDuration
		}
		if s.FrameDuration > maxFrame {
			maxFrame = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration, len(phaseSum))
	phasePct := make(map[string]float64, len(phaseSum))
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var ups float64
	if avg > 0 {
		ups = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrameDuration: avg,
		MinFrameDuration: minFrame,
		MaxFrameDuration: maxFrame,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		UpdatesPerSecond: ups,
		DrawInterval:     p.drawInterval,
		FPS:              fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"min_frame_us", s.MinFrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"updates_per_sec", int(s.UpdatesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Float64("updates_per_sec", s.UpdatesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     uint64  `csv:"window_end"`
	AvgFrameUS    int64   `csv:"avg_frame_us"`
	MinFrameUS    int64   `csv:"min_frame_us"`
	MaxFrameUS    int64   `csv:"max_frame_us"`
	UpdatesPerSec float64 `csv:"updates_per_sec"`
	FPS           float64 `csv:"fps"`
	SunPct        float64 `csv:"sun_pct"`
	SkyColorPct   float64 `csv:"sky_color_pct"`
	CloudsPct     float64 `csv:"clouds_pct"`
	OcclusionPct  float64 `csv:"occlusion_pct"`
	StarsPct      float64 `csv:"stars_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgFrameUS:    s.AvgFrameDuration.Microseconds(),
		MinFrameUS:    s.MinFrameDuration.Microseconds(),
		MaxFrameUS:    s.MaxFrameDuration.Microseconds(),
		UpdatesPerSec: s.UpdatesPerSecond,
		FPS:           s.FPS,
		SunPct:        s.PhasePct[PhaseSun],
		SkyColorPct:   s.PhasePct[PhaseSkyColor],
		CloudsPct:     s.PhasePct[PhaseClouds],
		OcclusionPct:  s.PhasePct[PhaseOcclusion],
		StarsPct:      s.PhasePct[PhaseStars],
	}
}

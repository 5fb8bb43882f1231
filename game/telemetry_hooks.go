package game

import (
	"log/slog"

	"github.com/pthm-cable/sky/systems"
	"github.com/pthm-cable/sky/telemetry"
)

// recordTelemetry samples the frame just computed and flushes full windows.
// frame is the number the update ran with; g.frame already counts it.
func (g *Game) recordTelemetry(frame uint64, grid *systems.DensityGrid) {
	g.collector.Record(telemetry.FrameSample{
		Frame:       frame,
		SunX:        g.sun.Pos.X,
		SunY:        g.sun.Pos.Y,
		Set:         g.sun.HasSet(),
		CycleAmount: g.cycle,
		CloudCover:  grid.Mean(),
		SunCoverage: g.shade.Coverage,
		Darken:      g.shade.Factor,
		StarAlpha:   g.starAlpha,
	})

	if g.collector.ShouldFlush(g.frame) {
		g.flushTelemetry()
	}
}

// flushTelemetry closes the current window and writes it out.
func (g *Game) flushTelemetry() {
	stats := g.collector.Flush(g.frame)
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.output.WriteWindow(stats); err != nil {
		slog.Error("failed to write frames", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// flushFinal writes a trailing partial window, if any frames are pending.
func (g *Game) flushFinal() {
	if g.collector.Pending() > 0 {
		g.flushTelemetry()
	}
}

package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sky/ui"
)

// Draw renders the sky and overlays.
func (g *Game) Draw() {
	g.perf.RecordDraw()

	rl.BeginDrawing()

	g.sky.Draw(g.SkyFrame())

	g.latched = g.hud.Draw(ui.HUDData{
		Frame:       g.frame,
		FPS:         rl.GetFPS(),
		SunSet:      g.sun.HasSet(),
		CycleAmount: g.cycle,
		Darken:      g.shade.Factor,
		Speedup:     g.latched,
	})

	if g.showPerf {
		stats := g.perf.Stats()
		g.perfPanel.Draw(ui.PerfPanelData{
			PhaseTimes: stats.PhaseAvg,
			Total:      stats.AvgFrameDuration,
			Registry:   g.registry,
		})
	}

	rl.EndDrawing()
}

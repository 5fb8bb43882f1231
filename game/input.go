package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Fast-forward while Right is held, or while the HUD toggle is on
	g.speedup = rl.IsKeyDown(rl.KeyRight) || g.latched

	if rl.IsKeyPressed(rl.KeySpace) {
		slog.Info("fps", "fps", rl.GetFPS(), "frame", g.frame)
	}

	if rl.IsKeyPressed(rl.KeyS) {
		g.logStars()
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.hud.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
}

// logStars dumps star positions and whether the sun has set.
func (g *Game) logStars() {
	points := g.stars.Points()
	positions := make([][2]float64, len(points))
	for i, p := range points {
		positions[i] = [2]float64{p.Pos.X, p.Pos.Y}
	}
	slog.Info("stars", "positions", positions, "has_set", g.sun.HasSet())
}

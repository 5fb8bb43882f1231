package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/sky/config"
	"github.com/pthm-cable/sky/renderer"
	"github.com/pthm-cable/sky/systems"
	"github.com/pthm-cable/sky/telemetry"
	"github.com/pthm-cable/sky/ui"
)

// Options configures a Game beyond what config.Config holds.
type Options struct {
	Seed      int64  // Star placement seed; 0 falls back to config, then to the clock
	OutputDir string // Directory for CSV output (empty = disabled)
	LogStats  bool   // Log window stats through slog
	Headless  bool   // Skip all raylib resources
	Speedup   bool   // Start with fast-forward held (headless runs)
}

// Game holds the complete sky state and drives it one frame at a time.
type Game struct {
	cfg *config.Config

	sun       *systems.Sun
	gradient  *systems.SkyGradient
	clouds    *systems.CloudField
	occlusion *systems.Occlusion
	stars     *systems.StarField
	moon      *systems.MoonTexture
	registry  *systems.SystemRegistry

	// Frame state
	frame     uint64
	speedup   bool
	latched   bool // Fast-forward held by the HUD toggle
	cycle     float64
	skyColor  color.RGBA
	shade     systems.Shade
	starAlpha float64

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	// Rendering (nil when headless)
	headless  bool
	sky       *renderer.SkyRenderer
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	showPerf  bool
}

// NewGame creates a windowed game with default options.
func NewGame() (*Game, error) {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions builds every sky component. It fails if any component
// cannot be initialized; there is no partial sky.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Stars.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	moon, err := systems.NewMoonTexture(cfg)
	if err != nil {
		return nil, fmt.Errorf("building moon texture: %w", err)
	}
	stars, err := systems.NewStarField(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("spawning stars: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:       cfg,
		sun:       systems.NewSun(cfg),
		gradient:  systems.NewSkyGradient(cfg),
		clouds:    systems.NewCloudField(cfg),
		occlusion: systems.NewOcclusion(cfg),
		stars:     stars,
		moon:      moon,
		registry:  systems.NewSystemRegistry(),
		speedup:   opts.Speedup,
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector: telemetry.NewCollector(cfg.Telemetry.WindowFrames),
		output:    output,
		logStats:  opts.LogStats,
		headless:  opts.Headless,
	}

	// Frame 0 before any update: start position, day sky, empty grid.
	g.cycle = systems.CycleAmount(g.sun)
	g.skyColor = g.gradient.At(g.cycle)
	g.shade = systems.Shade{Color: g.skyColor}

	if !g.headless {
		g.sky = renderer.NewSkyRenderer(cfg)
		g.hud = ui.NewHUD(8, 8, 170)
		g.perfPanel = ui.NewPerfPanel(int32(cfg.Screen.Size)-190, 8)
	}

	slog.Info("sky initialized",
		"seed", seed,
		"grid", cfg.Derived.GridSize,
		"stars", stars.Len(),
		"moon_spots", moon.Len(),
		"period_frames", g.sun.Period(),
	)

	return g, nil
}

// Update handles input and advances one frame.
func (g *Game) Update() {
	g.handleInput()
	g.step()
}

// UpdateHeadless advances one frame without touching raylib.
func (g *Game) UpdateHeadless() {
	g.step()
}

// step runs one frame: sun, sky color, clouds, occlusion, stars.
// The frame counter used for the update is the count before this call, so
// the first update reproduces the start position.
func (g *Game) step() {
	frame := g.frame
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseSun)
	sunFrames := frame
	if g.speedup {
		sunFrames *= g.cfg.Derived.SpeedupFrames
	}
	g.sun.Advance(sunFrames)

	g.perf.StartPhase(telemetry.PhaseSkyColor)
	g.cycle = systems.CycleAmount(g.sun)
	g.skyColor = g.gradient.At(g.cycle)

	g.perf.StartPhase(telemetry.PhaseClouds)
	grid := g.clouds.Generate(frame, g.speedup)

	g.perf.StartPhase(telemetry.PhaseOcclusion)
	g.shade = g.occlusion.Apply(g.skyColor, grid, g.sun)

	g.perf.StartPhase(telemetry.PhaseStars)
	g.starAlpha = g.stars.Update(g.sun)

	g.perf.EndFrame()
	g.frame++

	g.recordTelemetry(frame, grid)
}

// Unload releases the worker pool and closes output files.
func (g *Game) Unload() {
	g.flushFinal()
	g.clouds.Close()
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the number of completed frames.
func (g *Game) Tick() uint64 { return g.frame }

// SetSpeedup sets the fast-forward flag consumed by the next update.
func (g *Game) SetSpeedup(on bool) { g.speedup = on }

// Speedup reports whether fast-forward is active.
func (g *Game) Speedup() bool { return g.speedup }

// Sun exposes the sun for inspection.
func (g *Game) Sun() *systems.Sun { return g.sun }

// SkyColor is the undarkened gradient color of the last frame.
func (g *Game) SkyColor() color.RGBA { return g.skyColor }

// Background is the final background color of the last frame.
func (g *Game) Background() color.RGBA { return g.shade.Color }

// DarkenFactor is the occlusion factor applied on the last frame.
func (g *Game) DarkenFactor() float64 { return g.shade.Factor }

// Grid returns the most recent cloud density grid.
func (g *Game) Grid() *systems.DensityGrid { return g.clouds.Grid() }

// SkyFrame snapshots the state the renderer draws.
func (g *Game) SkyFrame() renderer.SkyFrame {
	return renderer.SkyFrame{
		Sky:    g.shade.Color,
		Sun:    g.sun.Pos,
		SunSet: g.sun.HasSet(),
		Stars:  g.stars.Points(),
		Moon:   g.moon,
		Clouds: g.clouds.Grid(),
	}
}

package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sky/config"
	"github.com/pthm-cable/sky/game"
	"github.com/pthm-cable/sky/logging"
)

func main() {
	os.Exit(run())
}

// run holds the program body so deferred cleanup runs before the exit code
// is returned.
func run() int {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logFile := flag.String("log-file", "", "Also write logs to this rotating file")
	seed := flag.Int64("seed", 0, "Star placement seed (0 = config, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	speedup := flag.Bool("speedup", false, "Fast-forward the whole headless run")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()

	logger, closer := logging.Setup(cfg.Log, *logFile, os.Stdout)
	defer closer.Close()
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:      *seed,
		OutputDir: *outputDir,
		LogStats:  *logStats,
		Headless:  *headless,
		Speedup:   *speedup,
	}

	if *headless {
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to initialize sky", "error", err)
			return 1
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"max_ticks", *maxTicks,
			"speedup", *speedup,
			"output_dir", *outputDir,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return 0
			}
		}
	}

	rl.InitWindow(int32(cfg.Screen.Size), int32(cfg.Screen.Size), "Sky")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to initialize sky", "error", err)
		return 1
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
	return 0
}

// Cloud and moon preview tool - interactive tuning of the noise parameters.
//
// Usage: go run ./cmd/skypreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sky/config"
	"github.com/pthm-cable/sky/systems"
)

const (
	windowWidth  = 900
	windowHeight = 620
	previewSize  = 450
	panelWidth   = windowWidth - previewSize - 30
	moonZoom     = 4
)

// CloudParams holds the tunable cloud settings.
type CloudParams struct {
	Cutoff       float32
	Scaling      float32
	NoiseGain    float32
	WindSpeed    float32
	SpatialScale float32
	Seed         int64
}

func paramsFrom(cfg *config.Config) CloudParams {
	return CloudParams{
		Cutoff:       float32(cfg.Clouds.Cutoff),
		Scaling:      float32(cfg.Clouds.Scaling),
		NoiseGain:    float32(cfg.Clouds.NoiseGain),
		WindSpeed:    float32(cfg.Clouds.WindSpeed),
		SpatialScale: float32(cfg.Clouds.SpatialScale),
		Seed:         cfg.Clouds.Seed,
	}
}

func (p CloudParams) apply(cfg config.Config) *config.Config {
	cfg.Clouds.Cutoff = float64(p.Cutoff)
	cfg.Clouds.Scaling = float64(p.Scaling)
	cfg.Clouds.NoiseGain = float64(p.NoiseGain)
	cfg.Clouds.WindSpeed = float64(p.WindSpeed)
	cfg.Clouds.SpatialScale = float64(p.SpatialScale)
	cfg.Clouds.Seed = p.Seed
	return &cfg
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	base := config.Cfg()

	moon, err := systems.NewMoonTexture(base)
	if err != nil {
		slog.Error("failed to build moon texture", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Sky Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := paramsFrom(base)
	defaults := params
	field := systems.NewCloudField(params.apply(*base))
	defer func() { field.Close() }()

	n := base.Derived.GridSize
	img := rl.GenImageColor(n, n, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	moonTex := buildMoonTexture(moon)
	defer rl.UnloadTexture(moonTex)

	var frame uint64
	animating := false
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			frame += 10
			needsRegen = true
		}

		if needsRegen {
			updateTexture(texture, field.Generate(frame, false))
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Grid column x is screen x; grid row y counts up from the bottom.
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(n), Height: -float32(n)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		grid := field.Grid()
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Frame: %d  Mean density: %.3f", frame, grid.Mean()), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Moon spots: %d", moon.Len()), 15, statsY+20, 16, rl.DarkGray)

		moonSide := float32(moonTex.Width * moonZoom)
		rl.DrawTextureEx(moonTex, rl.Vector2{X: 15, Y: float32(statsY + 45)}, 0, moonZoom, rl.White)
		rl.DrawRectangleLines(15, statsY+45, int32(moonSide), int32(moonSide), rl.LightGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Cloud Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		slider := func(label string, value *float32, min, max float32, format string) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				*value, min, max,
			)
			rl.DrawText(fmt.Sprintf(format, *value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if v != *value {
				*value = v
				changed = true
			}
			panelY += 35
		}

		slider("Cutoff (raw density below is clear sky)", &params.Cutoff, 0, 1, "%.2f")
		slider("Scaling (raw density mapped to opaque)", &params.Scaling, 0.5, 3, "%.2f")
		slider("Noise gain (simplex amplitude per octave)", &params.NoiseGain, 0.5, 3, "%.2f")
		slider("Wind speed", &params.WindSpeed, 0, 60, "%.1f")
		slider("Spatial scale (grid index divisor)", &params.SpatialScale, 50, 2000, "%.0f")

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			frame = 0
			needsRegen = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Next Seed") {
			params.Seed++
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			frame = 0
			changed = true
		}
		panelY += 55

		if changed {
			if params.Scaling <= params.Cutoff {
				params.Scaling = params.Cutoff + 0.01
			}
			field.Close()
			field = systems.NewCloudField(params.apply(*base))
			needsRegen = true
		}

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		snippet := params.yaml()
		for _, line := range strings.Split(snippet, "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()
	}
}

func (p CloudParams) yaml() string {
	return fmt.Sprintf(`clouds:
  seed: %d
  wind_speed: %.1f
  spatial_scale: %.0f
  noise_gain: %.2f
  cutoff: %.2f
  scaling: %.2f`,
		p.Seed, p.WindSpeed, p.SpatialScale, p.NoiseGain, p.Cutoff, p.Scaling)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// updateTexture paints the density grid as white cloud over day sky.
func updateTexture(texture rl.Texture2D, grid *systems.DensityGrid) {
	sky := color.RGBA{R: 135, G: 206, B: 250, A: 255}
	n := grid.N
	pixels := make([]color.RGBA, n*n)
	for x := 0; x < n; x++ {
		for y, d := range grid.Column(x) {
			pixels[y*n+x] = color.RGBA{
				R: lerp(sky.R, 255, d),
				G: lerp(sky.G, 255, d),
				B: lerp(sky.B, 255, d),
				A: 255,
			}
		}
	}
	rl.UpdateTexture(texture, pixels)
}

// buildMoonTexture rasterizes the moon spots onto the night body color.
func buildMoonTexture(m *systems.MoonTexture) rl.Texture2D {
	side := 2 * m.Radius
	body := color.RGBA{R: 255, G: 248, B: 220, A: 255}
	spot := color.RGBA{R: 169, G: 169, B: 169, A: 255}

	pixels := make([]color.RGBA, side*side)
	m.Each(func(s systems.MoonSpot) {
		px := int(math.Round(s.Pos.X-m.Center.X)) + m.Radius - 1
		py := m.Radius - int(math.Round(s.Pos.Y-m.Center.Y))
		if px < 0 || px >= side || py < 0 || py >= side {
			return
		}
		pixels[py*side+px] = color.RGBA{
			R: lerp(body.R, spot.R, s.Alpha),
			G: lerp(body.G, spot.G, s.Alpha),
			B: lerp(body.B, spot.B, s.Alpha),
			A: 255,
		}
	})

	img := rl.GenImageColor(side, side, rl.Blank)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.UpdateTexture(tex, pixels)
	return tex
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

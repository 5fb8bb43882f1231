package game

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/sky/config"
	"github.com/pthm-cable/sky/systems"
)

func init() {
	config.MustInit("")
}

var daySky = color.RGBA{R: 135, G: 206, B: 250, A: 255}

func newHeadless(t *testing.T, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestFrameZero(t *testing.T) {
	g := newHeadless(t, Options{})

	if g.Tick() != 0 {
		t.Fatalf("expected tick 0, got %d", g.Tick())
	}
	if pos := g.Sun().Pos; math.Abs(pos.X-225) > 1e-9 || math.Abs(pos.Y-360) > 1e-9 {
		t.Errorf("expected sun at start (225, 360), got %v", pos)
	}
	if g.Sun().HasSet() {
		t.Error("sun must not have set at frame 0")
	}
	if g.SkyColor() != daySky {
		t.Errorf("expected day sky %v, got %v", daySky, g.SkyColor())
	}
	if g.DarkenFactor() != 0 || g.Background() != daySky {
		t.Errorf("expected undarkened background, got %v (factor %v)", g.Background(), g.DarkenFactor())
	}
	for i, d := range g.Grid().Cells {
		if d != 0 {
			t.Fatalf("expected empty grid before the first update, cell %d = %v", i, d)
		}
	}
}

func TestFirstUpdateUsesFrameZero(t *testing.T) {
	g := newHeadless(t, Options{})
	g.UpdateHeadless()

	if g.Tick() != 1 {
		t.Fatalf("expected tick 1, got %d", g.Tick())
	}
	if pos := g.Sun().Pos; math.Abs(pos.X-225) > 1e-9 || math.Abs(pos.Y-360) > 1e-9 {
		t.Errorf("expected sun still at start, got %v", pos)
	}
	if g.SkyColor() != daySky {
		t.Errorf("expected day sky, got %v", g.SkyColor())
	}
	if want := systems.DarkenBy(g.SkyColor(), g.DarkenFactor()); g.Background() != want {
		t.Errorf("background %v does not match sky darkened by %v (%v)", g.Background(), g.DarkenFactor(), want)
	}
	if f := g.DarkenFactor(); f < 0 || f > 0.4 {
		t.Errorf("darken factor %v out of [0, 0.4]", f)
	}
}

func TestSunFollowsFrameCount(t *testing.T) {
	g := newHeadless(t, Options{})
	for i := 0; i < 40; i++ {
		g.UpdateHeadless()
	}

	// The last update used frame 39
	want := g.Sun().PositionAt(39)
	if got := g.Sun().Pos; math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSpeedupScalesSunFrames(t *testing.T) {
	g := newHeadless(t, Options{Speedup: true})
	for i := 0; i < 11; i++ {
		g.UpdateHeadless()
	}

	// Frame 10 with speedup jumps the sun to frame 90
	want := g.Sun().PositionAt(90)
	if got := g.Sun().Pos; math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}

	g.SetSpeedup(false)
	g.UpdateHeadless()
	want = g.Sun().PositionAt(11)
	if got := g.Sun().Pos; math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("expected %v after releasing speedup, got %v", want, got)
	}
}

func TestSkyFrameSnapshot(t *testing.T) {
	g := newHeadless(t, Options{})
	g.UpdateHeadless()

	f := g.SkyFrame()
	if len(f.Stars) != 30 {
		t.Errorf("expected 30 stars, got %d", len(f.Stars))
	}
	if f.Moon == nil || f.Clouds == nil {
		t.Fatal("expected moon and clouds in the frame")
	}
	if f.SunSet {
		t.Error("sun should be up")
	}
	if f.Sky != g.Background() {
		t.Errorf("frame sky %v differs from background %v", f.Sky, g.Background())
	}
	for i, s := range f.Stars {
		if s.Alpha != 0 {
			t.Errorf("star %d visible at noon (alpha %v)", i, s.Alpha)
		}
	}
}

func TestTelemetrySampleMatchesUpdateFrame(t *testing.T) {
	g := newHeadless(t, Options{})

	for want := uint64(0); want < 3; want++ {
		g.UpdateHeadless()
		last := g.collector.Last()
		if last.Frame != want {
			t.Fatalf("update %d: sample labelled frame %d", want, last.Frame)
		}
		pos := g.Sun().PositionAt(float64(want))
		if last.SunX != pos.X || last.SunY != pos.Y {
			t.Errorf("frame %d: sample sun (%v, %v), want %v", want, last.SunX, last.SunY, pos)
		}
	}
}

func TestHeadlessWritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("telemetry:\n  window_frames: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	config.MustInit(cfgPath)
	t.Cleanup(func() { config.MustInit("") })

	outDir := filepath.Join(dir, "out")
	g, err := NewGameWithOptions(Options{Headless: true, Seed: 3, OutputDir: outDir})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	for i := 0; i < 12; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	data, err := os.ReadFile(filepath.Join(outDir, "frames.csv"))
	if err != nil {
		t.Fatalf("reading frames.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header, two full windows and the trailing partial window
	if len(lines) != 4 {
		t.Errorf("expected 4 lines, got %d:\n%s", len(lines), data)
	}

	for _, name := range []string{"perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Screen.Size != 450 || cfg.Screen.CellSize != 3 {
		t.Errorf("expected 450px screen with 3px cells, got %d/%d", cfg.Screen.Size, cfg.Screen.CellSize)
	}
	if cfg.Derived.GridSize != 150 {
		t.Errorf("expected grid size 150, got %d", cfg.Derived.GridSize)
	}
	if cfg.Derived.SunStartX != 225 || cfg.Derived.SunStartY != 360 {
		t.Errorf("expected sun start (225, 360), got (%v, %v)", cfg.Derived.SunStartX, cfg.Derived.SunStartY)
	}
	if cfg.Derived.MoonRadius != 21 {
		t.Errorf("expected moon radius 21, got %d", cfg.Derived.MoonRadius)
	}
	if cfg.Derived.SpeedupFrames != 9 {
		t.Errorf("expected speedup frame multiplier 9, got %d", cfg.Derived.SpeedupFrames)
	}
	if cfg.Sky.Day != [3]uint8{135, 206, 250} {
		t.Errorf("unexpected day color %v", cfg.Sky.Day)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.yaml")
	data := "stars:\n  count: 12\nclouds:\n  wind_speed: 5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading user config: %v", err)
	}

	if cfg.Stars.Count != 12 {
		t.Errorf("expected overridden star count 12, got %d", cfg.Stars.Count)
	}
	if cfg.Clouds.WindSpeed != 5 {
		t.Errorf("expected overridden wind speed 5, got %v", cfg.Clouds.WindSpeed)
	}
	// Untouched keys keep their defaults
	if cfg.Clouds.Cutoff != 0.6 {
		t.Errorf("expected default cutoff 0.6, got %v", cfg.Clouds.Cutoff)
	}
	if cfg.Clouds.NoiseGain != 1.5 {
		t.Errorf("expected default noise gain 1.5, got %v", cfg.Clouds.NoiseGain)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"zero stars", "stars:\n  count: 0\n", "stars.count"},
		{"uneven grid", "screen:\n  cell_size: 7\n", "multiple of cell_size"},
		{"inverted remap", "clouds:\n  scaling: 0.5\n", "clouds.scaling"},
		{"zero noise gain", "clouds:\n  noise_gain: 0\n", "clouds.noise_gain"},
		{"slow speedup", "speedup:\n  factor: 0.5\n", "speedup.factor"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sky.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Stars.Count = 7

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if reloaded.Stars.Count != 7 {
		t.Errorf("expected star count 7 after reload, got %d", reloaded.Stars.Count)
	}
}

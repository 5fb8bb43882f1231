package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/sky/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager without error, got %v, %v", om, err)
	}
	// Nil receivers are no-ops
	if err := om.WriteWindow(WindowStats{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	for i := uint64(1); i <= 3; i++ {
		if err := om.WriteWindow(WindowStats{WindowEndFrame: i * 300, Frames: 300}); err != nil {
			t.Fatalf("writing window: %v", err)
		}
		if err := om.WritePerf(PerfStats{}, i*300); err != nil {
			t.Fatalf("writing perf: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	for _, name := range []string{"frames.csv", "perf.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Errorf("%s: expected header plus 3 rows, got %d lines", name, len(lines))
		}
		if !strings.HasPrefix(lines[0], "window_") {
			t.Errorf("%s: unexpected header %q", name, lines[0])
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected config snapshot: %v", err)
	}
}

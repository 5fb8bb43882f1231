package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/sky/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupConsoleJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := Setup(config.LogConfig{Level: "warn"}, "", &buf)
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("sun set", "frame", 42)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the warn record, got %d lines: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if rec["msg"] != "sun set" || rec["frame"] != float64(42) {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestSetupTeesIntoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.log")
	var buf bytes.Buffer

	logger, closer := Setup(config.LogConfig{Level: "info", MaxSizeMB: 1, MaxBackups: 1}, path, &buf)
	logger.Info("frame", "n", 1)
	if err := closer.Close(); err != nil {
		t.Fatalf("closing log file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !bytes.Equal(data, buf.Bytes()) {
		t.Errorf("file and console diverged:\nfile:    %q\nconsole: %q", data, buf.Bytes())
	}
}

package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunReportsInitFailureThroughLogFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(dir, "sky.log")

	oldArgs, oldFlags := os.Args, flag.CommandLine
	t.Cleanup(func() { os.Args, flag.CommandLine = oldArgs, oldFlags })
	flag.CommandLine = flag.NewFlagSet("sky", flag.ContinueOnError)
	os.Args = []string{"sky",
		"-headless",
		"-seed", "1",
		"-log-file", logPath,
		"-output-dir", filepath.Join(blocker, "out"),
	}

	if code := run(); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "failed to initialize sky") {
		t.Errorf("expected the init failure in the log file, got:\n%s", data)
	}
}

package game

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRunnerHeadless(t *testing.T) {
	cfg := testConfig(10, 10)
	cfg.Telemetry.StatsWindow = 5
	cfg.Simulation.InitialPlants = 10
	cfg.Simulation.InitialHerbivores = 3
	cfg.Simulation.InitialCarnivores = 1
	dir := filepath.Join(t.TempDir(), "run")

	r, err := NewRunner(cfg, Options{Seed: 1, Ticks: 20, OutputDir: dir})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if err := r.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got := r.Landscape().TickCount(); got != 20 {
		t.Errorf("TickCount = %d, want 20", got)
	}
	if got := r.Ticks(); got != 20 {
		t.Errorf("Ticks = %d, want 20", got)
	}
	if got := r.LastWindow().WindowEndTick; got != 20 {
		t.Errorf("last window end = %d, want 20", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header plus one row per five-tick window.
	if len(lines) != 5 {
		t.Errorf("telemetry.csv has %d lines, want 5", len(lines))
	}
	for _, name := range []string{"perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestRunnerDefaultsTicksFromConfig(t *testing.T) {
	cfg := testConfig(5, 5)
	cfg.Simulation.Ticks = 3
	cfg.Simulation.InitialPlants = 2
	cfg.Simulation.InitialHerbivores = 1
	cfg.Simulation.InitialCarnivores = 0

	r, err := NewRunner(cfg, Options{Seed: 2})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer r.Close()
	if err := r.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := r.Landscape().TickCount(); got != 3 {
		t.Errorf("TickCount = %d, want 3", got)
	}
}

func TestRunnerPublishesSnapshots(t *testing.T) {
	cfg := testConfig(8, 8)
	cfg.Simulation.InitialPlants = 5
	cfg.Simulation.InitialHerbivores = 2
	cfg.Simulation.InitialCarnivores = 1
	cfg.Simulation.TickDelayMS = 0

	r, err := NewRunner(cfg, Options{Seed: 3, Ticks: 4})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer r.Close()

	mb := NewMailbox()
	if err := r.Run(context.Background(), mb); err != nil {
		t.Fatalf("Run: %v", err)
	}
	s, ok := mb.Latest()
	if !ok {
		t.Fatal("no snapshot published")
	}
	if len(s) != len(r.Landscape().Snapshot()) {
		t.Errorf("published %d points, landscape has %d", len(s), len(r.Landscape().Snapshot()))
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	cfg := testConfig(8, 8)
	cfg.Simulation.TickDelayMS = 0

	r, err := NewRunner(cfg, Options{Seed: 4, Ticks: 1 << 30})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer r.Close()
	r.Controls().SetPaused(true)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := r.Run(ctx, NewMailbox()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run = %v, want DeadlineExceeded", err)
	}
	if got := r.Landscape().TickCount(); got != 0 {
		t.Errorf("paused runner ticked %d times", got)
	}
}

func TestControls(t *testing.T) {
	var c Controls
	if c.Paused() || c.Delay() != 0 {
		t.Fatal("zero controls should be running with no delay")
	}
	c.SetPaused(true)
	c.SetDelay(120 * time.Millisecond)
	if !c.Paused() {
		t.Error("Paused = false after SetPaused(true)")
	}
	if got := c.Delay(); got != 120*time.Millisecond {
		t.Errorf("Delay = %v, want 120ms", got)
	}
}

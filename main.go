package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/landscape/config"
	"github.com/pthm-cable/landscape/game"
	"github.com/pthm-cable/landscape/renderer"
	"github.com/pthm-cable/landscape/ui"
)

type flags struct {
	configPath string
	headless   bool
	logStats   bool
	outputDir  string
	seed       int64
	ticks      int
	profile    string
}

func main() {
	// CLI flags
	var f flags
	flag.StringVar(&f.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.BoolVar(&f.headless, "headless", false, "Run without graphics")
	flag.BoolVar(&f.logStats, "log-stats", false, "Output stats via slog")
	flag.StringVar(&f.outputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	flag.Int64Var(&f.seed, "seed", 0, "RNG seed (0 = config value, then time-based)")
	flag.IntVar(&f.ticks, "ticks", 0, "Stop after N ticks (0 = use config)")
	flag.StringVar(&f.profile, "profile", "", "Write a cpu or mem profile")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(f); err != nil {
		slog.Error("simulation aborted", "error", err)
		os.Exit(1)
	}
}

// run holds the deferred cleanup; main exits only after it returns.
func run(f flags) error {
	// Initialize config before anything else
	if err := config.Init(f.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	switch f.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir(f.outputDir)), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(profileDir(f.outputDir)), profile.Quiet).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", f.profile)
	}

	// Set up seed
	rngSeed := f.seed
	if rngSeed == 0 {
		rngSeed = cfg.Simulation.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		Ticks:     f.ticks,
		LogStats:  f.logStats,
		OutputDir: f.outputDir,
	}

	runner, err := game.NewRunner(cfg, opts)
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}
	defer func() {
		if cerr := runner.Close(); cerr != nil {
			slog.Error("failed to close output", "error", cerr)
		}
	}()

	headless := f.headless || cfg.Simulation.Headless
	slog.Info("starting simulation",
		"seed", rngSeed,
		"grid", [2]int{cfg.Grid.Width, cfg.Grid.Height},
		"headless", headless,
	)

	if headless {
		err = runHeadless(runner)
	} else {
		err = runWindowed(cfg, runner)
	}
	if err != nil {
		return fmt.Errorf("tick %d: %w", runner.Ticks(), err)
	}
	return nil
}

func profileDir(outputDir string) string {
	if outputDir == "" {
		return "."
	}
	return outputDir
}

func runHeadless(runner *game.Runner) error {
	start := time.Now()
	if err := runner.Run(context.Background(), nil); err != nil {
		return err
	}

	elapsed := time.Since(start)
	slog.Info("headless run complete",
		"ticks", runner.Ticks(),
		"elapsed", elapsed.Round(time.Millisecond),
		"ticks_per_sec", float64(runner.Ticks())/elapsed.Seconds(),
	)
	return nil
}

// runWindowed runs the simulation on its own goroutine and renders the
// latest snapshot on the main thread, which raylib requires.
func runWindowed(cfg *config.Config, runner *game.Runner) error {
	d := cfg.Derived
	rl.InitWindow(d.WindowWidth, d.WindowHeight, "Landscape")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	grid := renderer.NewGridRenderer(int32(cfg.Grid.Width), int32(cfg.Grid.Height), d.CellSize)
	hud := ui.NewHUD(0, d.GridPixelsH, d.WindowWidth, int32(cfg.Screen.HUDHeight))
	controls := runner.Controls()
	ceilings := [3]int{cfg.Population.MaxPlants, cfg.Population.MaxHerbivores, cfg.Population.MaxCarnivores}

	mb := game.NewMailbox()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var finished atomic.Bool
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer finished.Store(true)
		return runner.Run(ctx, mb)
	})

	var view game.Snapshot
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if s, ok := mb.Latest(); ok {
			view = s
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		grid.Draw(view)
		in := hud.Draw(ui.HUDData{
			Tick:        runner.Ticks(),
			TargetTicks: runner.TargetTicks(),
			Census:      view.Census(),
			Ceilings:    ceilings,
			FPS:         rl.GetFPS(),
			Paused:      controls.Paused(),
			DelayMS:     float32(controls.Delay().Milliseconds()),
			Finished:    finished.Load(),
		})
		rl.EndDrawing()

		if in.TogglePause {
			controls.SetPaused(!controls.Paused())
		}
		controls.SetDelay(time.Duration(in.DelayMS) * time.Millisecond)
	}

	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

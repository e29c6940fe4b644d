package game

import (
	"context"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/landscape/components"
	"github.com/pthm-cable/landscape/config"
	"github.com/pthm-cable/landscape/telemetry"
)

// Options configures a Runner.
type Options struct {
	Seed      int64
	Ticks     int  // Stop after this many ticks
	LogStats  bool // Log window and perf stats via slog
	OutputDir string
}

// Controls are adjusted by the UI while the simulation runs on another
// goroutine.
type Controls struct {
	paused  atomic.Bool
	delayMS atomic.Int64
}

// SetPaused pauses or resumes ticking.
func (c *Controls) SetPaused(p bool) { c.paused.Store(p) }

// Paused reports whether ticking is paused.
func (c *Controls) Paused() bool { return c.paused.Load() }

// SetDelay sets the pause between ticks.
func (c *Controls) SetDelay(d time.Duration) { c.delayMS.Store(d.Milliseconds()) }

// Delay returns the pause between ticks.
func (c *Controls) Delay() time.Duration { return time.Duration(c.delayMS.Load()) * time.Millisecond }

// Runner drives a seeded landscape for a fixed number of ticks and wires
// its telemetry to logs and CSV output.
type Runner struct {
	cfg       *config.Config
	opts      Options
	landscape *Landscape
	output    *telemetry.OutputManager
	controls  *Controls
	bookmarks *telemetry.BookmarkDetector
	ticks     atomic.Int32

	lastWindow telemetry.WindowStats
}

// NewRunner builds and seeds a landscape from cfg.
func NewRunner(cfg *config.Config, opts Options) (*Runner, error) {
	if opts.Ticks <= 0 {
		opts.Ticks = cfg.Simulation.Ticks
	}

	l, err := New(cfg, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, err
	}
	if err := l.Seed(cfg.Simulation.InitialPlants, cfg.Simulation.InitialHerbivores, cfg.Simulation.InitialCarnivores); err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}
	if output != nil {
		slog.Info("writing run output", "dir", output.Dir())
	}

	r := &Runner{
		cfg:       cfg,
		opts:      opts,
		landscape: l,
		output:    output,
		controls:  &Controls{},
		bookmarks: telemetry.NewBookmarkDetector(10),
	}
	r.controls.SetDelay(time.Duration(cfg.Simulation.TickDelayMS) * time.Millisecond)
	l.SetStatsHandler(r.handleStats)
	return r, nil
}

// Landscape returns the driven landscape. Only safe to use from the
// goroutine running the simulation, or before Run starts.
func (r *Runner) Landscape() *Landscape { return r.landscape }

// Controls returns the run controls.
func (r *Runner) Controls() *Controls { return r.controls }

// TargetTicks returns the tick count Run stops at.
func (r *Runner) TargetTicks() int { return r.opts.Ticks }

// Ticks returns the number of completed ticks. Safe to call from any
// goroutine.
func (r *Runner) Ticks() int32 { return r.ticks.Load() }

// LastWindow returns the most recent stats window.
func (r *Runner) LastWindow() telemetry.WindowStats { return r.lastWindow }

func (r *Runner) handleStats(stats telemetry.WindowStats, perf telemetry.PerfStats) {
	r.lastWindow = stats

	if r.opts.LogStats {
		stats.LogStats()
		perf.LogStats()
	}
	for _, b := range r.bookmarks.Check(stats) {
		b.LogBookmark()
	}

	if r.output != nil {
		if err := r.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := r.output.WritePerf(perf, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// Run ticks until the configured count is reached or ctx is done. Every
// snapshot is published to mb when it is non-nil. The returned error is an
// *InvariantError, ctx.Err(), or nil.
func (r *Runner) Run(ctx context.Context, mb *Mailbox) error {
	l := r.landscape
	if mb != nil {
		mb.Publish(l.Snapshot())
	}

	for int(l.TickCount()) < r.opts.Ticks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.controls.Paused() {
			if err := sleep(ctx, 10*time.Millisecond); err != nil {
				return err
			}
			continue
		}

		if err := l.Tick(); err != nil {
			return err
		}
		r.ticks.Store(l.TickCount())
		if mb != nil {
			mb.Publish(l.Snapshot())
			l.Perf().RecordFrame()
			if err := sleep(ctx, r.controls.Delay()); err != nil {
				return err
			}
		}
	}

	slog.Info("simulation finished",
		"ticks", l.TickCount(),
		"herbivores", l.Stats(components.Herbivore),
		"carnivores", l.Stats(components.Carnivore),
		"plants", l.PlantCount(),
	)
	return nil
}

// Close flushes and closes run output.
func (r *Runner) Close() error {
	return r.output.Close()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package game

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/landscape/components"
	"github.com/pthm-cable/landscape/config"
	"github.com/pthm-cable/landscape/neural"
	"github.com/pthm-cable/landscape/telemetry"
)

// Kind is a placement category with its own grid layer and ceiling.
type Kind uint8

const (
	KindPlant Kind = iota
	KindHerbivore
	KindCarnivore
)

func kindOf(s components.Species) Kind {
	if s == components.Carnivore {
		return KindCarnivore
	}
	return KindHerbivore
}

// noEntity marks an empty cell slot.
var noEntity ecs.Entity

// cell holds at most one plant and one animal, by entity.
type cell struct {
	plant  ecs.Entity
	animal ecs.Entity
}

// Landscape owns the toroidal grid and every agent on it. It is not safe
// for concurrent use; the renderer only sees Snapshot copies.
type Landscape struct {
	rng           *rand.Rand
	width, height int

	// Agent arena. Cells refer to agents by entity, and deceased animals
	// stay in the world for one tick before removal.
	world        *ecs.World
	plants       *ecs.Map1[components.Plant]
	animals      *ecs.Map1[components.Animal]
	plantFilter  *ecs.Filter1[components.Plant]
	animalFilter *ecs.Filter1[components.Animal]

	cells []cell

	// Traversal order, reshuffled every tick
	xOrder, yOrder []int
	// Scratch orders for empty-cell scans
	scanX, scanY []int

	plantParams  components.PlantParams
	animalParams [components.NumSpecies]components.AnimalParams
	growEnergy   float32
	ceilings     [3]int
	brainOpts    neural.Options

	plantCount int
	stats      [components.NumSpecies]telemetry.SpeciesStats
	deceased   []ecs.Entity
	view       Snapshot
	tick       int32

	collector    *telemetry.Collector
	perf         *telemetry.PerfCollector
	statsHandler func(telemetry.WindowStats, telemetry.PerfStats)
}

// New creates an empty landscape sized and tuned by cfg. All randomness,
// including the brains of seeded animals, comes from rng.
func New(cfg *config.Config, rng *rand.Rand) (*Landscape, error) {
	w, h := cfg.Grid.Width, cfg.Grid.Height
	if w < 3 || h < 3 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	selection, err := neural.ParseSelection(cfg.Brain.Selection)
	if err != nil {
		return nil, fmt.Errorf("brain: %w", err)
	}

	world := ecs.NewWorld()

	l := &Landscape{
		rng:    rng,
		width:  w,
		height: h,

		world:        world,
		plants:       ecs.NewMap1[components.Plant](world),
		animals:      ecs.NewMap1[components.Animal](world),
		plantFilter:  ecs.NewFilter1[components.Plant](world),
		animalFilter: ecs.NewFilter1[components.Animal](world),

		cells:  make([]cell, w*h),
		xOrder: identity(w),
		yOrder: identity(h),
		scanX:  identity(w),
		scanY:  identity(h),

		plantParams: components.PlantParams{
			MaxEnergy:           float32(cfg.Plant.MaxEnergy),
			EatenEnergy:         float32(cfg.Plant.EatenEnergy),
			ReproduceEnergyRate: float32(cfg.Plant.ReproduceEnergyRate),
			AllowReproduction:   cfg.Plant.AllowReproduction,
		},
		growEnergy: float32(cfg.Plant.GrowEnergy),
		ceilings: [3]int{
			KindPlant:     cfg.Population.MaxPlants,
			KindHerbivore: cfg.Population.MaxHerbivores,
			KindCarnivore: cfg.Population.MaxCarnivores,
		},
		brainOpts: neural.Options{Selection: selection, Mutations: cfg.Brain.Mutations},

		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}
	rates := components.ActionRates{
		Turn:      float32(cfg.Actions.TurnRate),
		Move:      float32(cfg.Actions.MoveRate),
		Eat:       float32(cfg.Actions.EatRate),
		Reproduce: float32(cfg.Actions.ReproduceRate),
	}
	for s, a := range cfg.Animal.Both() {
		l.animalParams[s] = components.AnimalParams{
			MaxEnergy:           float32(a.MaxEnergy),
			BirthEnergy:         float32(a.BirthEnergy),
			HomeostasisCost:     float32(a.HomeostasisCost),
			EatenEnergyShare:    float32(a.EatenEnergyShare),
			ReproduceEnergyRate: float32(a.ReproduceEnergyRate),
			AllowReproduction:   a.AllowReproduction,
			Rates:               rates,
		}
	}
	return l, nil
}

func identity(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

// Width returns the grid width in cells.
func (l *Landscape) Width() int { return l.width }

// Height returns the grid height in cells.
func (l *Landscape) Height() int { return l.height }

// TickCount returns the number of completed ticks.
func (l *Landscape) TickCount() int32 { return l.tick }

// Snapshot returns the view built by the last finalize.
func (l *Landscape) Snapshot() Snapshot { return l.view }

// Stats returns the running counters for a species.
func (l *Landscape) Stats(s components.Species) telemetry.SpeciesStats {
	return l.stats[s]
}

// PlantCount returns the number of plants on the grid, eaten or not.
func (l *Landscape) PlantCount() int { return l.plantCount }

// DeceasedCount returns the number of animals awaiting removal.
func (l *Landscape) DeceasedCount() int { return len(l.deceased) }

// Perf returns the tick timing collector.
func (l *Landscape) Perf() *telemetry.PerfCollector { return l.perf }

// SetStatsHandler registers a callback invoked at the end of every stats
// window.
func (l *Landscape) SetStatsHandler(fn func(telemetry.WindowStats, telemetry.PerfStats)) {
	l.statsHandler = fn
}

func (l *Landscape) at(x, y int) *cell {
	return &l.cells[y*l.width+x]
}

func (l *Landscape) inBounds(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height
}

// PlantAt returns the plant at (x, y), if any.
func (l *Landscape) PlantAt(x, y int) (*components.Plant, bool) {
	if !l.inBounds(x, y) {
		return nil, false
	}
	e := l.at(x, y).plant
	if e == noEntity {
		return nil, false
	}
	return l.plants.Get(e), true
}

// AnimalAt returns the animal at (x, y), if any.
func (l *Landscape) AnimalAt(x, y int) (*components.Animal, bool) {
	if !l.inBounds(x, y) {
		return nil, false
	}
	e := l.at(x, y).animal
	if e == noEntity {
		return nil, false
	}
	return l.animals.Get(e), true
}

// Alive reports whether e is still stored in the arena.
func (l *Landscape) Alive(e ecs.Entity) bool {
	return l.world.Alive(e)
}

// EdiblePlant implements systems.Occupants.
func (l *Landscape) EdiblePlant(x, y int) bool {
	p, ok := l.PlantAt(x, y)
	return ok && !p.IsEaten()
}

// LiveAnimal implements systems.Occupants.
func (l *Landscape) LiveAnimal(x, y int) (components.Species, bool) {
	a, ok := l.AnimalAt(x, y)
	if !ok || a.IsDead() || a.Eaten {
		return 0, false
	}
	return a.Species, true
}

// NewPlant returns a plant with the configured parameters.
func (l *Landscape) NewPlant(energy float32) components.Plant {
	return components.NewPlant(l.plantParams, energy)
}

// NewAnimal returns a founder with its species' configured parameters. A nil brain
// is replaced by a random one.
func (l *Landscape) NewAnimal(s components.Species, facing components.Direction, brain components.Policy) components.Animal {
	if brain == nil {
		brain = neural.NewBrain(l.rng, l.brainOpts)
	}
	return components.NewAnimal(s, l.animalParams[s], facing, brain)
}

// AddPlant places p at (x, y).
func (l *Landscape) AddPlant(x, y int, p components.Plant) (ecs.Entity, error) {
	if !l.inBounds(x, y) {
		return noEntity, fmt.Errorf("add plant (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	if l.at(x, y).plant != noEntity {
		return noEntity, fmt.Errorf("add plant (%d,%d): %w", x, y, ErrCellTaken)
	}
	return l.spawnPlant(x, y, p), nil
}

// AddAnimal places a as a founder at (x, y).
func (l *Landscape) AddAnimal(x, y int, a components.Animal) (ecs.Entity, error) {
	if !l.inBounds(x, y) {
		return noEntity, fmt.Errorf("add animal (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	if l.at(x, y).animal != noEntity {
		return noEntity, fmt.Errorf("add animal (%d,%d): %w", x, y, ErrCellTaken)
	}
	l.stats[a.Species].RecordSeed(a.Generation)
	return l.spawnAnimal(x, y, a), nil
}

// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all simulation configuration parameters.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Population PopulationConfig `yaml:"population"`
	Plant      PlantConfig      `yaml:"plant"`
	Animal     AnimalsConfig    `yaml:"animal"`
	Actions    ActionsConfig    `yaml:"actions"`
	Brain      BrainConfig      `yaml:"brain"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds the toroidal grid dimensions in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ScreenConfig holds display settings for windowed mode.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	CellSize  int `yaml:"cell_size"` // Pixels per cell (0 = fit grid to screen)
	HUDHeight int `yaml:"hud_height"`
}

// SimulationConfig holds run-level parameters.
type SimulationConfig struct {
	Ticks             int   `yaml:"ticks"`
	Headless          bool  `yaml:"headless"`
	Seed              int64 `yaml:"seed"` // 0 = time-based
	InitialPlants     int   `yaml:"initial_plants"`
	InitialHerbivores int   `yaml:"initial_herbivores"`
	InitialCarnivores int   `yaml:"initial_carnivores"`
	TickDelayMS       int   `yaml:"tick_delay_ms"` // Windowed mode only
}

// PopulationConfig holds per-species population ceilings. Zero means unlimited.
type PopulationConfig struct {
	MaxPlants     int `yaml:"max_plants"`
	MaxHerbivores int `yaml:"max_herbivores"`
	MaxCarnivores int `yaml:"max_carnivores"`
}

// PlantConfig holds plant energy parameters.
type PlantConfig struct {
	MaxEnergy           float64 `yaml:"max_energy"`
	EatenEnergy         float64 `yaml:"eaten_energy"`          // Energy released per bite
	ReproduceEnergyRate float64 `yaml:"reproduce_energy_rate"` // Fraction of max energy to trigger reproduction
	AllowReproduction   bool    `yaml:"allow_reproduction"`
	GrowEnergy          float64 `yaml:"grow_energy"` // Energy gained per Grow action
}

// AnimalsConfig holds the energy parameters of each animal species.
type AnimalsConfig struct {
	Herbivore AnimalConfig `yaml:"herbivore"`
	Carnivore AnimalConfig `yaml:"carnivore"`
}

// Both returns the herbivore and carnivore sections, in that order.
func (a *AnimalsConfig) Both() []*AnimalConfig {
	return []*AnimalConfig{&a.Herbivore, &a.Carnivore}
}

// AnimalConfig holds the energy parameters of one animal species.
type AnimalConfig struct {
	MaxEnergy           float64 `yaml:"max_energy"`
	BirthEnergy         float64 `yaml:"birth_energy"`
	HomeostasisCost     float64 `yaml:"homeostasis_cost"`
	EatenEnergyShare    float64 `yaml:"eaten_energy_share"`
	ReproduceEnergyRate float64 `yaml:"reproduce_energy_rate"`
	AllowReproduction   bool    `yaml:"allow_reproduction"`
}

// ActionsConfig holds per-action cost multipliers applied to the homeostasis cost.
type ActionsConfig struct {
	TurnRate      float64 `yaml:"turn_rate"`
	MoveRate      float64 `yaml:"move_rate"`
	EatRate       float64 `yaml:"eat_rate"`
	ReproduceRate float64 `yaml:"reproduce_rate"`
}

// BrainConfig holds decision engine parameters.
type BrainConfig struct {
	Selection string `yaml:"selection"` // weighted | winner_take_all
	Mutations int    `yaml:"mutations"` // Weights replaced per clone (min 1)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
	PerfWindow  int `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	CellSize     int32
	GridPixelsW  int32
	GridPixelsH  int32
	WindowWidth  int32
	WindowHeight int32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults. Panics if they do not parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks ranges that the simulation relies on.
func (c *Config) Validate() error {
	// Perception reaches two cells away in every direction.
	if c.Grid.Width < 3 || c.Grid.Height < 3 {
		return fmt.Errorf("%w: grid must be at least 3x3, got %dx%d", ErrInvalid, c.Grid.Width, c.Grid.Height)
	}
	if c.Population.MaxPlants < 0 || c.Population.MaxHerbivores < 0 || c.Population.MaxCarnivores < 0 {
		return fmt.Errorf("%w: population ceilings must be non-negative", ErrInvalid)
	}
	if c.Plant.MaxEnergy <= 0 {
		return fmt.Errorf("%w: plant.max_energy must be positive", ErrInvalid)
	}
	rates := map[string]float64{
		"plant.reproduce_energy_rate": c.Plant.ReproduceEnergyRate,
	}
	for name, a := range map[string]AnimalConfig{"herbivore": c.Animal.Herbivore, "carnivore": c.Animal.Carnivore} {
		if a.MaxEnergy <= 0 {
			return fmt.Errorf("%w: animal.%s.max_energy must be positive", ErrInvalid, name)
		}
		rates["animal."+name+".reproduce_energy_rate"] = a.ReproduceEnergyRate
		rates["animal."+name+".eaten_energy_share"] = a.EatenEnergyShare
	}
	for name, v := range rates {
		if v <= 0 || v > 1 {
			return fmt.Errorf("%w: %s must be in (0, 1], got %v", ErrInvalid, name, v)
		}
	}
	switch c.Brain.Selection {
	case "", "weighted", "winner_take_all":
	default:
		return fmt.Errorf("%w: unknown brain.selection %q", ErrInvalid, c.Brain.Selection)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Brain.Mutations < 1 {
		c.Brain.Mutations = 1
	}
	if c.Brain.Selection == "" {
		c.Brain.Selection = "weighted"
	}
	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 100
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}

	// Fit the grid into the area above the HUD when no cell size is given
	cell := c.Screen.CellSize
	if cell <= 0 {
		cell = min(c.Screen.Width/c.Grid.Width, (c.Screen.Height-c.Screen.HUDHeight)/c.Grid.Height)
		if cell < 1 {
			cell = 1
		}
	}
	c.Derived.CellSize = int32(cell)
	c.Derived.GridPixelsW = int32(cell * c.Grid.Width)
	c.Derived.GridPixelsH = int32(cell * c.Grid.Height)
	c.Derived.WindowWidth = max(c.Derived.GridPixelsW, int32(c.Screen.Width))
	c.Derived.WindowHeight = c.Derived.GridPixelsH + int32(c.Screen.HUDHeight)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

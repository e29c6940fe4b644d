package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population at window end
	Plants      int     `csv:"plants"`
	PlantEnergy float64 `csv:"plant_energy"`
	Herbivores  int     `csv:"herbivores"`
	Carnivores  int     `csv:"carnivores"`

	// Events during window
	HerbBirths int `csv:"herb_births"`
	CarnBirths int `csv:"carn_births"`
	HerbDeaths int `csv:"herb_deaths"`
	CarnDeaths int `csv:"carn_deaths"`
	Seedlings  int `csv:"seedlings"`

	// Feeding and movement
	Kills        int     `csv:"kills"`
	PlantBites   int     `csv:"plant_bites"`
	MissedEats   int     `csv:"missed_eats"`
	MissRate     float64 `csv:"miss_rate"`
	BlockedMoves int     `csv:"blocked_moves"`

	// Soft reproduction failures
	CeilingHits int `csv:"ceiling_hits"`
	NoSpaceHits int `csv:"no_space_hits"`

	// Energy distribution (sampled at window end)
	HerbEnergyMean float64 `csv:"herb_energy_mean"`
	HerbEnergyP10  float64 `csv:"herb_energy_p10"`
	HerbEnergyP50  float64 `csv:"herb_energy_p50"`
	HerbEnergyP90  float64 `csv:"herb_energy_p90"`
	CarnEnergyMean float64 `csv:"carn_energy_mean"`
	CarnEnergyP10  float64 `csv:"carn_energy_p10"`
	CarnEnergyP50  float64 `csv:"carn_energy_p50"`
	CarnEnergyP90  float64 `csv:"carn_energy_p90"`

	HerbMaxGeneration int `csv:"herb_max_generation"`
	CarnMaxGeneration int `csv:"carn_max_generation"`
}

// ComputeEnergyStats calculates the mean and empirical 10th/50th/90th
// percentiles of the values. Returns zeros for an empty slice.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("plants", s.Plants),
		slog.Float64("plant_energy", s.PlantEnergy),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("carnivores", s.Carnivores),
		slog.Int("herb_births", s.HerbBirths),
		slog.Int("carn_births", s.CarnBirths),
		slog.Int("herb_deaths", s.HerbDeaths),
		slog.Int("carn_deaths", s.CarnDeaths),
		slog.Int("seedlings", s.Seedlings),
		slog.Int("kills", s.Kills),
		slog.Int("plant_bites", s.PlantBites),
		slog.Int("missed_eats", s.MissedEats),
		slog.Float64("miss_rate", s.MissRate),
		slog.Int("blocked_moves", s.BlockedMoves),
		slog.Int("ceiling_hits", s.CeilingHits),
		slog.Int("no_space_hits", s.NoSpaceHits),
		slog.Float64("herb_energy_mean", s.HerbEnergyMean),
		slog.Float64("herb_energy_p50", s.HerbEnergyP50),
		slog.Float64("carn_energy_mean", s.CarnEnergyMean),
		slog.Float64("carn_energy_p50", s.CarnEnergyP50),
		slog.Int("herb_max_generation", s.HerbMaxGeneration),
		slog.Int("carn_max_generation", s.CarnMaxGeneration),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}

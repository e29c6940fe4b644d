package telemetry

import "github.com/pthm-cable/landscape/components"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int32
	windowStartTick int32

	// Event counters for current window
	births       [components.NumSpecies]int
	deaths       [components.NumSpecies]int
	kills        int
	plantBites   int
	missedEats   int
	blockedMoves int
	ceilingHits  int
	noSpaceHits  int
	seedlings    int
}

// NewCollector creates a stats collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int32(windowTicks)}
}

// RecordBirth records an animal born by reproduction.
func (c *Collector) RecordBirth(s components.Species) {
	c.births[s]++
}

// RecordDeath records an animal removed at finalize.
func (c *Collector) RecordDeath(s components.Species) {
	c.deaths[s]++
}

// RecordKill records a carnivore eating a herbivore.
func (c *Collector) RecordKill() {
	c.kills++
}

// RecordPlantBite records a herbivore eating from a plant.
func (c *Collector) RecordPlantBite() {
	c.plantBites++
}

// RecordMissedEat records an eat action that found no target.
func (c *Collector) RecordMissedEat() {
	c.missedEats++
}

// RecordBlockedMove records a move into a cell held by another animal.
func (c *Collector) RecordBlockedMove() {
	c.blockedMoves++
}

// RecordCeilingHit records a reproduction refused by the population ceiling.
func (c *Collector) RecordCeilingHit() {
	c.ceilingHits++
}

// RecordNoSpace records a reproduction that found no empty cell.
func (c *Collector) RecordNoSpace() {
	c.noSpaceHits++
}

// RecordSeedling records a plant born by reproduction.
func (c *Collector) RecordSeedling() {
	c.seedlings++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Sample is the population state measured at the end of a window.
type Sample struct {
	Plants      int
	PlantEnergy float64

	Herbivores        int
	Carnivores        int
	HerbivoreEnergies []float64
	CarnivoreEnergies []float64

	HerbivoreMaxGeneration uint32
	CarnivoreMaxGeneration uint32
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	herbMean, herbP10, herbP50, herbP90 := ComputeEnergyStats(s.HerbivoreEnergies)
	carnMean, carnP10, carnP50, carnP90 := ComputeEnergyStats(s.CarnivoreEnergies)

	var missRate float64
	if attempts := c.kills + c.plantBites + c.missedEats; attempts > 0 {
		missRate = float64(c.missedEats) / float64(attempts)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Plants:      s.Plants,
		PlantEnergy: s.PlantEnergy,
		Herbivores:  s.Herbivores,
		Carnivores:  s.Carnivores,

		HerbBirths: c.births[components.Herbivore],
		CarnBirths: c.births[components.Carnivore],
		HerbDeaths: c.deaths[components.Herbivore],
		CarnDeaths: c.deaths[components.Carnivore],
		Seedlings:  c.seedlings,

		Kills:        c.kills,
		PlantBites:   c.plantBites,
		MissedEats:   c.missedEats,
		MissRate:     missRate,
		BlockedMoves: c.blockedMoves,
		CeilingHits:  c.ceilingHits,
		NoSpaceHits:  c.noSpaceHits,

		HerbEnergyMean: herbMean,
		HerbEnergyP10:  herbP10,
		HerbEnergyP50:  herbP50,
		HerbEnergyP90:  herbP90,
		CarnEnergyMean: carnMean,
		CarnEnergyP10:  carnP10,
		CarnEnergyP50:  carnP50,
		CarnEnergyP90:  carnP90,

		HerbMaxGeneration: int(s.HerbivoreMaxGeneration),
		CarnMaxGeneration: int(s.CarnivoreMaxGeneration),
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = [components.NumSpecies]int{}
	c.deaths = [components.NumSpecies]int{}
	c.kills = 0
	c.plantBites = 0
	c.missedEats = 0
	c.blockedMoves = 0
	c.ceilingHits = 0
	c.noSpaceHits = 0
	c.seedlings = 0

	return stats
}

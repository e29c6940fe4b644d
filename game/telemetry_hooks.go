package game

import (
	"github.com/pthm-cable/landscape/components"
	"github.com/pthm-cable/landscape/telemetry"
)

// flushTelemetry closes the stats window when it is due and hands the
// result to the stats handler.
func (l *Landscape) flushTelemetry() {
	if !l.collector.ShouldFlush(l.tick) {
		return
	}

	stats := l.collector.Flush(l.tick, l.sample())
	if l.statsHandler != nil {
		l.statsHandler(stats, l.perf.Stats())
	}
}

// sample measures the current populations and energy distributions.
func (l *Landscape) sample() telemetry.Sample {
	s := telemetry.Sample{
		HerbivoreMaxGeneration: l.stats[components.Herbivore].MaxGeneration,
		CarnivoreMaxGeneration: l.stats[components.Carnivore].MaxGeneration,
	}

	plants := l.plantFilter.Query()
	for plants.Next() {
		p := plants.Get()
		s.Plants++
		s.PlantEnergy += float64(p.Energy)
	}

	// Deceased animals awaiting removal are still in the arena.
	animals := l.animalFilter.Query()
	for animals.Next() {
		a := animals.Get()
		if a.IsDead() {
			continue
		}
		switch a.Species {
		case components.Herbivore:
			s.Herbivores++
			s.HerbivoreEnergies = append(s.HerbivoreEnergies, float64(a.Energy))
		case components.Carnivore:
			s.Carnivores++
			s.CarnivoreEnergies = append(s.CarnivoreEnergies, float64(a.Energy))
		}
	}
	return s
}

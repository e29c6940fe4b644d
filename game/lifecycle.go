package game

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/landscape/components"
)

// spawnPlant stores p in the arena and links it to (x, y).
func (l *Landscape) spawnPlant(x, y int, p components.Plant) ecs.Entity {
	e := l.plants.NewEntity(&p)
	l.at(x, y).plant = e
	l.plantCount++
	return e
}

// spawnAnimal stores a in the arena and links it to (x, y). The caller
// updates species counters.
func (l *Landscape) spawnAnimal(x, y int, a components.Animal) ecs.Entity {
	e := l.animals.NewEntity(&a)
	l.at(x, y).animal = e
	return e
}

func (l *Landscape) population(k Kind) int {
	switch k {
	case KindPlant:
		return l.plantCount
	case KindHerbivore:
		return l.stats[components.Herbivore].Population
	default:
		return l.stats[components.Carnivore].Population
	}
}

func (l *Landscape) free(k Kind, c *cell) bool {
	if k == KindPlant {
		return c.plant == noEntity
	}
	return c.animal == noEntity
}

// FindEmptySpot returns a random cell free in the layer of kind k.
//
// The population ceiling is checked first and reported as
// ErrPopulationCeiling. A plant layer with no free cell yields
// ErrNoEmptyCell; an animal layer with no free cell means the grid is
// physically full, which is an InvariantError.
func (l *Landscape) FindEmptySpot(k Kind) (x, y int, err error) {
	if ceiling := l.ceilings[k]; ceiling > 0 && l.population(k) >= ceiling {
		return 0, 0, ErrPopulationCeiling
	}

	shuffle(l.rng, l.scanX)
	shuffle(l.rng, l.scanY)
	for _, x := range l.scanX {
		for _, y := range l.scanY {
			if l.free(k, l.at(x, y)) {
				return x, y, nil
			}
		}
	}

	if k == KindPlant {
		return 0, 0, ErrNoEmptyCell
	}
	return 0, 0, invariant("find empty spot", 0, 0, "grid is full of animals")
}

// Seed places the configured initial populations at random empty cells
// with random facings. Ceilings stop seeding early without error.
func (l *Landscape) Seed(plants, herbivores, carnivores int) error {
	for range plants {
		x, y, err := l.FindEmptySpot(KindPlant)
		if err != nil {
			if isSoft(err) {
				break
			}
			return fmt.Errorf("seeding plants: %w", err)
		}
		l.spawnPlant(x, y, l.NewPlant(l.plantParams.MaxEnergy))
	}

	founders := []struct {
		species components.Species
		count   int
	}{
		{components.Herbivore, herbivores},
		{components.Carnivore, carnivores},
	}
	for _, f := range founders {
		for range f.count {
			x, y, err := l.FindEmptySpot(kindOf(f.species))
			if err != nil {
				if isSoft(err) {
					break
				}
				return fmt.Errorf("seeding %s: %w", f.species, err)
			}
			facing := components.Directions[l.rng.Intn(len(components.Directions))]
			if _, err := l.AddAnimal(x, y, l.NewAnimal(f.species, facing, nil)); err != nil {
				return fmt.Errorf("seeding %s: %w", f.species, err)
			}
		}
	}

	l.finalize()
	return nil
}

// isSoft reports whether err is an expected placement failure.
func isSoft(err error) bool {
	return errors.Is(err, ErrPopulationCeiling) || errors.Is(err, ErrNoEmptyCell)
}

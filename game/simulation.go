package game

import (
	"errors"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/landscape/components"
	"github.com/pthm-cable/landscape/systems"
	"github.com/pthm-cable/landscape/telemetry"
)

// Tick advances the simulation by one step: shuffle the traversal order,
// sweep every cell, then finalize. A non-nil error is always an
// *InvariantError and leaves the landscape unusable.
func (l *Landscape) Tick() error {
	l.perf.StartTick()

	l.perf.StartPhase(telemetry.PhaseShuffle)
	shuffle(l.rng, l.xOrder)
	shuffle(l.rng, l.yOrder)

	l.perf.StartPhase(telemetry.PhaseSweep)
	if err := l.sweep(); err != nil {
		return err
	}

	l.perf.StartPhase(telemetry.PhaseFinalize)
	l.finalize()
	l.tick++

	l.perf.StartPhase(telemetry.PhaseTelemetry)
	l.flushTelemetry()

	l.perf.EndTick()
	return nil
}

// shuffle permutes s in place (Fisher-Yates).
func shuffle(rng *rand.Rand, s []int) {
	rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

func (l *Landscape) sweep() error {
	for _, x := range l.xOrder {
		for _, y := range l.yOrder {
			c := l.at(x, y)
			if c.plant != noEntity {
				l.processPlant(c.plant)
			}
			// May hold an animal that moved here earlier in this sweep.
			if c.animal != noEntity {
				if err := l.processAnimal(c.animal, x, y); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (l *Landscape) processPlant(e ecs.Entity) {
	p := l.plants.Get(e)
	switch p.Intend() {
	case components.PlantGrow:
		p.Grow(l.growEnergy)
	case components.PlantReproduce:
		seedling := p.Reproduce()
		x, y, err := l.FindEmptySpot(KindPlant)
		if err != nil {
			l.recordSoftFailure(err)
			return
		}
		l.spawnPlant(x, y, seedling)
		l.collector.RecordSeedling()
	}
}

func (l *Landscape) processAnimal(e ecs.Entity, x, y int) error {
	a := l.animals.Get(e)
	if a.Processed {
		return nil
	}
	if a.IsDead() {
		return invariant("sweep", x, y, "dead animal reached the sweep")
	}

	perception := systems.Perceive(l, x, y, a.Facing)
	switch a.IntendAction(perception) {
	case components.ActionTurnLeft:
		a.ApplyTurn(true)
	case components.ActionTurnRight:
		a.ApplyTurn(false)
	case components.ActionMove:
		l.move(e, a, x, y)
	case components.ActionEat:
		l.eat(a, x, y)
	case components.ActionReproduce:
		return l.reproduce(a, x, y)
	default:
		a.ApplyInactivity()
	}
	return nil
}

// move steps a forward unless another animal holds the destination. The
// attempt is paid for either way.
func (l *Landscape) move(e ecs.Entity, a *components.Animal, x, y int) {
	nx, ny := systems.Step(x, y, a.Facing, l.width, l.height)
	dst := l.at(nx, ny)
	if dst.animal != noEntity {
		a.ApplyMove(false)
		l.collector.RecordBlockedMove()
		return
	}
	a.ApplyMove(true)
	dst.animal = e
	l.at(x, y).animal = noEntity
}

// eat feeds a from a random edible target in its proximity. Herbivores
// only see plants and carnivores only see herbivores.
func (l *Landscape) eat(a *components.Animal, x, y int) {
	for _, o := range systems.ShuffledProximity(l.rng, a.Facing) {
		tx, ty := systems.Translate(x, y, o, l.width, l.height)
		target := l.at(tx, ty)

		if a.Species == components.Herbivore {
			if target.plant == noEntity {
				continue
			}
			p := l.plants.Get(target.plant)
			if p.IsEaten() {
				continue
			}
			a.ApplyEat(p.BeEaten())
			l.collector.RecordPlantBite()
			return
		}

		if target.animal == noEntity {
			continue
		}
		prey := l.animals.Get(target.animal)
		if prey.IsDead() || prey.Eaten || prey.Species != components.Herbivore {
			continue
		}
		l.devour(a, prey)
		return
	}

	// A miss costs nothing.
	l.collector.RecordMissedEat()
}

// devour transfers a herbivore's released energy to a carnivore.
func (l *Landscape) devour(a, prey *components.Animal) {
	released := prey.BeEaten()
	// Eaten prey must not act later in this sweep.
	prey.Processed = true
	a.ApplyEat(released)
	l.collector.RecordKill()
}

// reproduce places a child on a random free cell of the species layer.
func (l *Landscape) reproduce(a *components.Animal, x, y int) error {
	cx, cy, err := l.FindEmptySpot(kindOf(a.Species))
	if err != nil {
		if errors.Is(err, ErrInvariant) {
			var inv *InvariantError
			if errors.As(err, &inv) {
				inv.X, inv.Y = x, y
			}
			return err
		}
		a.ApplyFailedReproduce()
		l.recordSoftFailure(err)
		return nil
	}

	// a must not be used once the arena grows.
	child := a.ApplyReproduce()
	child.Processed = true
	l.spawnAnimal(cx, cy, child)
	l.stats[child.Species].RecordBirth(child.Generation)
	l.collector.RecordBirth(child.Species)
	return nil
}

func (l *Landscape) recordSoftFailure(err error) {
	switch {
	case errors.Is(err, ErrPopulationCeiling):
		l.collector.RecordCeilingHit()
	case errors.Is(err, ErrNoEmptyCell):
		l.collector.RecordNoSpace()
	}
}

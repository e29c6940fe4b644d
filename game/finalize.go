package game

import (
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/landscape/components"
	"github.com/pthm-cable/landscape/telemetry"
)

// finalize removes last tick's deceased from the arena, moves this tick's
// dead off the grid, clears processed flags and rebuilds the snapshot.
func (l *Landscape) finalize() {
	for _, e := range l.deceased {
		l.world.RemoveEntity(e)
	}
	l.deceased = l.deceased[:0]

	for s := range l.stats {
		l.stats[s].ResetOldest()
	}

	view := make(Snapshot, 0, len(l.view))
	for x := range l.width {
		for y := range l.height {
			c := l.at(x, y)
			markers := [2]Marker{MarkerNone, MarkerNone}

			if c.plant != noEntity {
				markers[0] = MarkerPlant
			}
			if c.animal != noEntity {
				markers[1] = l.finalizeAnimal(c)
			}

			if m := slices.Min(markers[:]); m != MarkerNone {
				view = append(view, Point{X: x, Y: y, Marker: m})
			}
		}
	}
	l.view = view
}

// finalizeAnimal settles the animal in c and returns its marker.
func (l *Landscape) finalizeAnimal(c *cell) Marker {
	e := c.animal
	a := l.animals.Get(e)
	rec := record(e, a)

	if a.IsDead() {
		l.deceased = append(l.deceased, e)
		c.animal = noEntity
		l.stats[a.Species].RecordDeath(rec)
		l.collector.RecordDeath(a.Species)
		return deathMarker(a.Eaten)
	}

	a.Processed = false
	l.stats[a.Species].ObserveLive(rec)
	return liveMarker(a.Species, a.Facing)
}

func record(e ecs.Entity, a *components.Animal) telemetry.AnimalRecord {
	return telemetry.AnimalRecord{
		ID:         e.ID(),
		Age:        a.Age,
		Generation: a.Generation,
		Energy:     a.Energy,
	}
}

package game

import "github.com/pthm-cable/landscape/components"

// Marker is what the renderer draws in a cell. When a cell holds more than
// one thing the smallest marker wins.
type Marker uint8

const (
	MarkerKilledAnimal Marker = iota
	MarkerDeadAnimal
	MarkerHerbLeft
	MarkerHerbRight
	MarkerHerbFront
	MarkerHerbBack
	MarkerCarnLeft
	MarkerCarnRight
	MarkerCarnFront
	MarkerCarnBack
	MarkerPlant
	MarkerNone
)

func (m Marker) String() string {
	switch m {
	case MarkerKilledAnimal:
		return "killed"
	case MarkerDeadAnimal:
		return "dead"
	case MarkerHerbLeft, MarkerHerbRight, MarkerHerbFront, MarkerHerbBack:
		return "herbivore"
	case MarkerCarnLeft, MarkerCarnRight, MarkerCarnFront, MarkerCarnBack:
		return "carnivore"
	case MarkerPlant:
		return "plant"
	default:
		return "none"
	}
}

// IsAnimal reports whether the marker shows a live animal.
func (m Marker) IsAnimal() bool {
	return m >= MarkerHerbLeft && m <= MarkerCarnBack
}

// Facing returns the direction a live-animal marker shows.
func (m Marker) Facing() components.Direction {
	switch (m - MarkerHerbLeft) % 4 {
	case 0:
		return components.West
	case 1:
		return components.East
	case 2:
		return components.South
	default:
		return components.North
	}
}

// liveMarker picks the sprite for a live animal. North faces away from the
// viewer, so it is drawn from the back.
func liveMarker(s components.Species, facing components.Direction) Marker {
	base := MarkerHerbLeft
	if s == components.Carnivore {
		base = MarkerCarnLeft
	}
	switch facing {
	case components.West:
		return base
	case components.East:
		return base + 1
	case components.South:
		return base + 2
	default:
		return base + 3
	}
}

func deathMarker(eaten bool) Marker {
	if eaten {
		return MarkerKilledAnimal
	}
	return MarkerDeadAnimal
}

// Point is one non-empty cell of the snapshot.
type Point struct {
	X, Y   int
	Marker Marker
}

// Snapshot is the view of the grid at the end of a tick. It shares no
// memory with the landscape and is never modified after it is built.
type Snapshot []Point

// Mailbox carries the latest snapshot from the simulation to the renderer.
// It holds at most one value; publishing replaces an undrained one.
type Mailbox struct {
	ch chan Snapshot
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{ch: make(chan Snapshot, 1)}
}

// Publish stores s without blocking, dropping any value not yet taken.
// Only one goroutine may publish.
func (m *Mailbox) Publish(s Snapshot) {
	for {
		select {
		case m.ch <- s:
			return
		default:
		}
		select {
		case <-m.ch:
		default:
		}
	}
}

// Latest takes the pending snapshot, if any, without blocking.
func (m *Mailbox) Latest() (Snapshot, bool) {
	select {
	case s := <-m.ch:
		return s, true
	default:
		return nil, false
	}
}

// Census counts what a snapshot shows. Plants beneath an animal are not
// visible and are not counted.
type Census struct {
	Plants     int
	Herbivores int
	Carnivores int
	Dead       int
}

// Census tallies the markers in s.
func (s Snapshot) Census() Census {
	var c Census
	for _, p := range s {
		switch {
		case p.Marker == MarkerPlant:
			c.Plants++
		case p.Marker == MarkerKilledAnimal || p.Marker == MarkerDeadAnimal:
			c.Dead++
		case p.Marker >= MarkerCarnLeft && p.Marker <= MarkerCarnBack:
			c.Carnivores++
		case p.Marker.IsAnimal():
			c.Herbivores++
		}
	}
	return c
}

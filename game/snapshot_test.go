package game

import (
	"testing"

	"github.com/pthm-cable/landscape/components"
)

func markerAt(s Snapshot, x, y int) Marker {
	for _, p := range s {
		if p.X == x && p.Y == y {
			return p.Marker
		}
	}
	return MarkerNone
}

func TestLiveMarkerFacing(t *testing.T) {
	tests := []struct {
		species components.Species
		facing  components.Direction
		want    Marker
	}{
		{components.Herbivore, components.North, MarkerHerbBack},
		{components.Herbivore, components.South, MarkerHerbFront},
		{components.Herbivore, components.West, MarkerHerbLeft},
		{components.Herbivore, components.East, MarkerHerbRight},
		{components.Carnivore, components.North, MarkerCarnBack},
		{components.Carnivore, components.South, MarkerCarnFront},
		{components.Carnivore, components.West, MarkerCarnLeft},
		{components.Carnivore, components.East, MarkerCarnRight},
	}

	for _, tt := range tests {
		got := liveMarker(tt.species, tt.facing)
		if got != tt.want {
			t.Errorf("liveMarker(%v, %v) = %d, want %d", tt.species, tt.facing, got, tt.want)
		}
		if !got.IsAnimal() {
			t.Errorf("%d.IsAnimal() = false", got)
		}
		if f := got.Facing(); f != tt.facing {
			t.Errorf("%d.Facing() = %v, want %v", got, f, tt.facing)
		}
	}

	for _, m := range []Marker{MarkerKilledAnimal, MarkerDeadAnimal, MarkerPlant, MarkerNone} {
		if m.IsAnimal() {
			t.Errorf("%v.IsAnimal() = true", m)
		}
	}
}

func TestSnapshotPriority(t *testing.T) {
	l := newTestLandscape(t, testConfig(5, 5), 1)
	if _, err := l.AddPlant(1, 1, l.NewPlant(5)); err != nil {
		t.Fatalf("AddPlant: %v", err)
	}
	if _, err := l.AddPlant(3, 3, l.NewPlant(5)); err != nil {
		t.Fatalf("AddPlant: %v", err)
	}
	mustAddAnimal(t, l, 1, 1, components.Carnivore, components.East, components.ActionNone)
	a := mustAddAnimal(t, l, 2, 2, components.Herbivore, components.North, components.ActionNone)
	a.Energy = 0
	l.finalize()

	s := l.Snapshot()
	if len(s) != 3 {
		t.Fatalf("snapshot has %d points, want 3: %v", len(s), s)
	}
	if got := markerAt(s, 1, 1); got != MarkerCarnRight {
		t.Errorf("animal over plant = %v, want carnivore facing right", got)
	}
	if got := markerAt(s, 3, 3); got != MarkerPlant {
		t.Errorf("lone plant = %v, want plant", got)
	}
	if got := markerAt(s, 2, 2); got != MarkerDeadAnimal {
		t.Errorf("starved animal = %v, want dead", got)
	}
}

func TestSnapshotCoversEveryOccupiedCell(t *testing.T) {
	l := newTestLandscape(t, testConfig(12, 8), 5)
	if err := l.Seed(30, 10, 5); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	for range 5 {
		s := l.Snapshot()
		seen := make(map[[2]int]bool, len(s))
		for _, p := range s {
			key := [2]int{p.X, p.Y}
			if seen[key] {
				t.Fatalf("cell (%d,%d) appears twice", p.X, p.Y)
			}
			seen[key] = true

			_, hasPlant := l.PlantAt(p.X, p.Y)
			a, hasAnimal := l.AnimalAt(p.X, p.Y)
			switch {
			case p.Marker.IsAnimal():
				if !hasAnimal || p.Marker != liveMarker(a.Species, a.Facing) {
					t.Fatalf("cell (%d,%d) marker %d does not match animal", p.X, p.Y, p.Marker)
				}
			case p.Marker == MarkerPlant:
				if !hasPlant || hasAnimal {
					t.Fatalf("cell (%d,%d) marked plant", p.X, p.Y)
				}
			}
		}

		for x := range 12 {
			for y := range 8 {
				_, hasPlant := l.PlantAt(x, y)
				_, hasAnimal := l.AnimalAt(x, y)
				if (hasPlant || hasAnimal) && !seen[[2]int{x, y}] {
					t.Fatalf("occupied cell (%d,%d) missing from snapshot", x, y)
				}
			}
		}

		mustTick(t, l)
	}
}

func TestSnapshotIsNotMutatedByLaterTicks(t *testing.T) {
	l := newTestLandscape(t, testConfig(6, 6), 1)
	mustAddAnimal(t, l, 0, 0, components.Herbivore, components.South, components.ActionMove)
	l.finalize()

	before := l.Snapshot()
	first := before[0]
	for range 3 {
		mustTick(t, l)
	}
	if before[0] != first {
		t.Errorf("old snapshot changed: %+v, was %+v", before[0], first)
	}
	if got := markerAt(l.Snapshot(), 0, 3); got != MarkerHerbFront {
		t.Errorf("new snapshot marker at (0,3) = %v", got)
	}
}

func TestMailboxKeepsLatest(t *testing.T) {
	mb := NewMailbox()
	if _, ok := mb.Latest(); ok {
		t.Fatal("empty mailbox returned a snapshot")
	}

	for i := range 3 {
		mb.Publish(Snapshot{{X: i, Marker: MarkerPlant}})
	}

	s, ok := mb.Latest()
	if !ok {
		t.Fatal("no snapshot after publish")
	}
	if len(s) != 1 || s[0].X != 2 {
		t.Errorf("Latest = %v, want the third snapshot", s)
	}
	if _, ok := mb.Latest(); ok {
		t.Error("snapshot delivered twice")
	}
}

func TestMailboxConcurrent(t *testing.T) {
	mb := NewMailbox()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range 1000 {
			mb.Publish(Snapshot{{X: i}})
		}
	}()

	last := -1
	for {
		select {
		case <-done:
			if s, ok := mb.Latest(); ok {
				last = s[0].X
			}
			if last != 999 {
				t.Errorf("last snapshot = %d, want 999", last)
			}
			return
		default:
		}
		if s, ok := mb.Latest(); ok {
			if s[0].X < last {
				t.Fatalf("snapshot went backwards: %d after %d", s[0].X, last)
			}
			last = s[0].X
		}
	}
}

func TestCensus(t *testing.T) {
	s := Snapshot{
		{X: 0, Y: 0, Marker: MarkerPlant},
		{X: 1, Y: 0, Marker: MarkerPlant},
		{X: 2, Y: 0, Marker: MarkerHerbLeft},
		{X: 3, Y: 0, Marker: MarkerHerbBack},
		{X: 4, Y: 0, Marker: MarkerCarnFront},
		{X: 5, Y: 0, Marker: MarkerKilledAnimal},
		{X: 6, Y: 0, Marker: MarkerDeadAnimal},
	}
	want := Census{Plants: 2, Herbivores: 2, Carnivores: 1, Dead: 2}
	if got := s.Census(); got != want {
		t.Errorf("Census = %+v, want %+v", got, want)
	}
}

package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/landscape/components"
)

// fakeGrid is a sparse Occupants implementation for tests.
type fakeGrid struct {
	w, h    int
	plants  map[[2]int]bool
	animals map[[2]int]components.Species
}

func newFakeGrid(w, h int) *fakeGrid {
	return &fakeGrid{w: w, h: h, plants: map[[2]int]bool{}, animals: map[[2]int]components.Species{}}
}

func (g *fakeGrid) Width() int  { return g.w }
func (g *fakeGrid) Height() int { return g.h }

func (g *fakeGrid) EdiblePlant(x, y int) bool { return g.plants[[2]int{x, y}] }

func (g *fakeGrid) LiveAnimal(x, y int) (components.Species, bool) {
	s, ok := g.animals[[2]int{x, y}]
	return s, ok
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, size, want int
	}{
		{0, 10, 0},
		{9, 10, 9},
		{10, 10, 0},
		{-1, 10, 9},
		{-2, 10, 8},
		{-11, 10, 9},
		{23, 10, 3},
	}
	for _, tt := range tests {
		if got := Wrap(tt.v, tt.size); got != tt.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", tt.v, tt.size, got, tt.want)
		}
	}
}

func TestStepWrapsAllFacings(t *testing.T) {
	const w, h = 7, 5

	tests := []struct {
		name   string
		x, y   int
		facing components.Direction
		wx, wy int
	}{
		{"north off top", 3, 0, components.North, 3, h - 1},
		{"south off bottom", 3, h - 1, components.South, 3, 0},
		{"west off left", 0, 2, components.West, w - 1, 2},
		{"east off right", w - 1, 2, components.East, 0, 2},
		{"north interior", 3, 2, components.North, 3, 1},
		{"east interior", 3, 2, components.East, 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Step(tt.x, tt.y, tt.facing, w, h)
			if x != tt.wx || y != tt.wy {
				t.Errorf("Step = (%d,%d), want (%d,%d)", x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestOffsetsReflection(t *testing.T) {
	pairs := [][2]components.Direction{
		{components.North, components.South},
		{components.West, components.East},
	}
	for _, pair := range pairs {
		for region := range components.NumRegions {
			a, b := Offsets(pair[0], region), Offsets(pair[1], region)
			if len(a) != len(b) {
				t.Fatalf("%v/%v region %d: lengths %d vs %d", pair[0], pair[1], region, len(a), len(b))
			}
			for i := range a {
				if a[i].DX != -b[i].DX || a[i].DY != -b[i].DY {
					t.Errorf("%v/%v region %d offset %d: %v is not the reflection of %v",
						pair[0], pair[1], region, i, b[i], a[i])
				}
			}
		}
	}
}

func TestOffsetsGeometry(t *testing.T) {
	for _, d := range components.Directions {
		dx, dy := d.Delta()
		ahead := Offset{dx, dy}

		// The cell straight ahead is always in proximity
		found := false
		for _, o := range Offsets(d, components.RegionProximity) {
			if o == ahead {
				found = true
			}
			if abs(o.DX) > 1 || abs(o.DY) > 1 || o == (Offset{}) {
				t.Errorf("%v proximity offset %v is not adjacent", d, o)
			}
		}
		if !found {
			t.Errorf("%v proximity does not contain the cell ahead %v", d, ahead)
		}

		// Every front offset is two cells forward
		for _, o := range Offsets(d, components.RegionFront) {
			if o.DX*dx+o.DY*dy != 2 {
				t.Errorf("%v front offset %v is not two cells ahead", d, o)
			}
		}

		// Left and right are mirror images across the facing axis
		left, right := Offsets(d, components.RegionLeft), Offsets(d, components.RegionRight)
		for i := range left {
			along := left[i].DX*dx + left[i].DY*dy
			alongR := right[i].DX*dx + right[i].DY*dy
			if along != alongR {
				t.Errorf("%v left %v and right %v differ along the facing", d, left[i], right[i])
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestPerceiveNorth(t *testing.T) {
	g := newFakeGrid(10, 10)
	g.plants[[2]int{5, 3}] = true                   // front
	g.plants[[2]int{5, 4}] = true                   // proximity
	g.animals[[2]int{3, 5}] = components.Herbivore  // left
	g.animals[[2]int{7, 4}] = components.Carnivore  // right
	g.animals[[2]int{6, 4}] = components.Herbivore  // proximity
	g.animals[[2]int{5, 6}] = components.Carnivore  // behind, unseen

	p := Perceive(g, 5, 5, components.North)

	want := map[[2]int]int{
		{components.SensePlant, components.RegionFront}:         1,
		{components.SensePlant, components.RegionProximity}:     1,
		{components.SenseHerbivore, components.RegionLeft}:      1,
		{components.SenseCarnivore, components.RegionRight}:     1,
		{components.SenseHerbivore, components.RegionProximity}: 1,
	}
	total := 0
	for k, v := range want {
		if got := p.Count(k[0], k[1]); got != v {
			t.Errorf("Count(%d,%d) = %d, want %d", k[0], k[1], got, v)
		}
		total += v
	}
	sum := 0
	for _, c := range p {
		sum += c
	}
	if sum != total {
		t.Errorf("perception total = %d, want %d (%v)", sum, total, p)
	}
}

func TestPerceiveWrapsAtEdges(t *testing.T) {
	g := newFakeGrid(6, 6)
	// Animal at the origin facing west sees across the left edge
	g.plants[[2]int{4, 0}] = true // front (-2, 0)
	g.plants[[2]int{5, 5}] = true // proximity (-1, -1)

	p := Perceive(g, 0, 0, components.West)
	if got := p.Count(components.SensePlant, components.RegionFront); got != 1 {
		t.Errorf("front plants = %d, want 1", got)
	}
	if got := p.Count(components.SensePlant, components.RegionProximity); got != 1 {
		t.Errorf("proximity plants = %d, want 1", got)
	}
}

func TestShuffledProximity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	src := Offsets(components.East, components.RegionProximity)

	firsts := map[Offset]int{}
	for i := 0; i < 500; i++ {
		out := ShuffledProximity(rng, components.East)
		if len(out) != len(src) {
			t.Fatalf("len = %d, want %d", len(out), len(src))
		}
		seen := map[Offset]bool{}
		for _, o := range out {
			seen[o] = true
		}
		for _, o := range src {
			if !seen[o] {
				t.Fatalf("offset %v missing from permutation %v", o, out)
			}
		}
		firsts[out[0]]++
	}

	// Each offset should lead the permutation some of the time
	if len(firsts) != len(src) {
		t.Errorf("only %d of %d offsets ever came first", len(firsts), len(src))
	}
	// The shared table is untouched
	if src[0] != Offsets(components.East, components.RegionProximity)[0] {
		t.Error("ShuffledProximity modified the offset table")
	}
}

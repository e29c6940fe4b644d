// Package systems implements the grid geometry used by the landscape:
// toroidal wrapping and direction-relative perception.
package systems

import (
	"math/rand"

	"github.com/pthm-cable/landscape/components"
)

// Offset is a relative grid position. Positive DY points south.
type Offset struct {
	DX, DY int
}

func (o Offset) negate() Offset {
	return Offset{-o.DX, -o.DY}
}

// Regions for a facing of North and West. South and East are their point
// reflections.
var (
	northRegions = [components.NumRegions][]Offset{
		components.RegionFront:     {{-2, -2}, {-1, -2}, {0, -2}, {1, -2}, {2, -2}},
		components.RegionLeft:      {{-2, 0}, {-2, -1}},
		components.RegionRight:     {{2, 0}, {2, -1}},
		components.RegionProximity: {{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}},
	}
	westRegions = [components.NumRegions][]Offset{
		components.RegionFront:     {{-2, 2}, {-2, 1}, {-2, 0}, {-2, -1}, {-2, -2}},
		components.RegionLeft:      {{0, 2}, {-1, 2}},
		components.RegionRight:     {{0, -2}, {-1, -2}},
		components.RegionProximity: {{0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}},
	}
)

// regions is indexed by facing.
var regions [4][components.NumRegions][]Offset

func init() {
	regions[components.North] = northRegions
	regions[components.West] = westRegions
	regions[components.South] = reflect(northRegions)
	regions[components.East] = reflect(westRegions)
}

func reflect(src [components.NumRegions][]Offset) [components.NumRegions][]Offset {
	var dst [components.NumRegions][]Offset
	for r, offs := range src {
		dst[r] = make([]Offset, len(offs))
		for i, o := range offs {
			dst[r][i] = o.negate()
		}
	}
	return dst
}

// Offsets returns the offsets of a region for a facing. The slice must not
// be modified.
func Offsets(d components.Direction, region int) []Offset {
	return regions[d][region]
}

// Occupants is the read-only grid view needed for perception.
type Occupants interface {
	Width() int
	Height() int
	// EdiblePlant reports a plant with energy left at (x, y).
	EdiblePlant(x, y int) bool
	// LiveAnimal reports the species of a live, uneaten animal at (x, y).
	LiveAnimal(x, y int) (components.Species, bool)
}

// Perceive counts plants, herbivores and carnivores in each region around
// (x, y) for the given facing.
func Perceive(g Occupants, x, y int, facing components.Direction) components.Perception {
	var p components.Perception
	w, h := g.Width(), g.Height()

	for region := range components.NumRegions {
		for _, o := range regions[facing][region] {
			cx, cy := Translate(x, y, o, w, h)
			if g.EdiblePlant(cx, cy) {
				p.Add(components.SensePlant, region)
			}
			if s, ok := g.LiveAnimal(cx, cy); ok {
				p.Add(components.SenseOf(s), region)
			}
		}
	}
	return p
}

// ShuffledProximity returns the proximity offsets for a facing in a random
// order, so that target choice among several candidates is uniform.
func ShuffledProximity(rng *rand.Rand, facing components.Direction) []Offset {
	src := regions[facing][components.RegionProximity]
	out := make([]Offset, len(src))
	copy(out, src)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

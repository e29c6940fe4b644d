package components

// Perception regions relative to an animal's facing.
const (
	RegionFront = iota
	RegionLeft
	RegionRight
	RegionProximity
	NumRegions
)

// Sensed occupant kinds.
const (
	SensePlant = iota
	SenseHerbivore
	SenseCarnivore
	NumSenses
)

// PerceptionSize is the length of the perception vector.
const PerceptionSize = NumSenses * NumRegions

// Perception holds occupant counts, grouped by sense then region:
// plant front/left/right/proximity, herbivore ..., carnivore ...
type Perception [PerceptionSize]int

// Index returns the vector position for a sense and region.
func Index(sense, region int) int {
	return sense*NumRegions + region
}

// Add increments the count for a sense in a region.
func (p *Perception) Add(sense, region int) {
	p[Index(sense, region)]++
}

// Count returns the count for a sense in a region.
func (p *Perception) Count(sense, region int) int {
	return p[Index(sense, region)]
}

// SenseOf returns the perception sense for an animal species.
func SenseOf(s Species) int {
	if s == Carnivore {
		return SenseCarnivore
	}
	return SenseHerbivore
}

package components

// PlantParams holds the energy rules shared by all plants.
type PlantParams struct {
	MaxEnergy           float32
	EatenEnergy         float32
	ReproduceEnergyRate float32
	AllowReproduction   bool
}

// Plant is a stationary energy source. A plant with zero energy is eaten
// and dormant but stays on the grid and may regrow.
type Plant struct {
	Energy float32
	Params PlantParams
}

// NewPlant creates a plant with energy clamped to [0, MaxEnergy].
func NewPlant(params PlantParams, energy float32) Plant {
	return Plant{Energy: clamp(energy, params.MaxEnergy), Params: params}
}

// Intend chooses the plant's action for this tick.
func (p *Plant) Intend() PlantAction {
	if p.Params.AllowReproduction && p.Energy > p.Params.ReproduceEnergyRate*p.Params.MaxEnergy {
		return PlantReproduce
	}
	if p.Energy < p.Params.MaxEnergy {
		return PlantGrow
	}
	return PlantNone
}

// Grow adds energy up to the maximum.
func (p *Plant) Grow(amount float32) {
	p.Energy = clamp(p.Energy+amount, p.Params.MaxEnergy)
}

// Reproduce returns a seedling with zero energy.
func (p *Plant) Reproduce() Plant {
	return Plant{Params: p.Params}
}

// BeEaten removes one bite and returns the energy released.
// The bite never exceeds the remaining energy.
func (p *Plant) BeEaten() float32 {
	bite := min(p.Params.EatenEnergy, p.Energy)
	p.Energy -= bite
	return bite
}

// IsEaten reports whether the plant is dormant.
func (p *Plant) IsEaten() bool {
	return p.Energy <= 0
}

func clamp(v, hi float32) float32 {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

package components

// ActionRates scale the homeostasis cost for each action.
type ActionRates struct {
	Turn      float32
	Move      float32
	Eat       float32
	Reproduce float32
}

// AnimalParams holds the energy rules for one species.
type AnimalParams struct {
	MaxEnergy           float32
	BirthEnergy         float32
	HomeostasisCost     float32
	EatenEnergyShare    float32
	ReproduceEnergyRate float32
	AllowReproduction   bool
	Rates               ActionRates
}

// Animal is a mobile agent driven by a Policy.
type Animal struct {
	Species    Species
	Energy     float32
	Facing     Direction
	Age        uint32
	Generation uint32
	Eaten      bool

	// Processed is set by IntendAction and cleared by the landscape after
	// the sweep, so an animal that moves ahead of the sweep acts once.
	Processed bool

	Brain  Policy
	Params AnimalParams
}

// NewAnimal creates a founder animal with its birth energy.
func NewAnimal(species Species, params AnimalParams, facing Direction, brain Policy) Animal {
	return Animal{
		Species: species,
		Energy:  clamp(params.BirthEnergy, params.MaxEnergy),
		Facing:  facing,
		Brain:   brain,
		Params:  params,
	}
}

// IsDead reports whether the animal has run out of energy.
func (a *Animal) IsDead() bool {
	return a.Energy <= 0
}

// ReproductionDue reports whether reproduction is forced this tick.
func (a *Animal) ReproductionDue() bool {
	return a.Params.AllowReproduction && a.Energy > a.Params.ReproduceEnergyRate*a.Params.MaxEnergy
}

// IntendAction ages the animal, marks it processed and returns its action.
func (a *Animal) IntendAction(p Perception) Action {
	a.Age++
	a.Processed = true
	if a.ReproductionDue() {
		return ActionReproduce
	}
	if a.Brain == nil {
		return ActionNone
	}
	return a.Brain.Decide(p)
}

// ApplyTurn rotates the facing by 90 degrees and pays the turn cost.
func (a *Animal) ApplyTurn(left bool) {
	if left {
		a.Facing = a.Facing.Left()
	} else {
		a.Facing = a.Facing.Right()
	}
	a.spend(a.Params.Rates.Turn * a.Params.HomeostasisCost)
}

// ApplyMove pays the move cost. The attempt is charged even when the
// destination was blocked.
func (a *Animal) ApplyMove(bool) {
	a.spend(a.Params.Rates.Move * a.Params.HomeostasisCost)
}

// ApplyEat pays the eat cost and absorbs gained energy up to the maximum.
func (a *Animal) ApplyEat(gained float32) {
	a.spend(a.Params.Rates.Eat * a.Params.HomeostasisCost)
	a.Energy = clamp(a.Energy+gained, a.Params.MaxEnergy)
}

// ApplyReproduce pays the reproduction cost plus the birth endowment and
// returns the child.
func (a *Animal) ApplyReproduce() Animal {
	a.spend(a.Params.Rates.Reproduce*a.Params.HomeostasisCost + a.Params.BirthEnergy)

	child := Animal{
		Species:    a.Species,
		Energy:     clamp(a.Params.BirthEnergy, a.Params.MaxEnergy),
		Facing:     a.Facing,
		Generation: a.Generation + 1,
		Params:     a.Params,
	}
	child.Params.AllowReproduction = true
	if a.Brain != nil {
		child.Brain = a.Brain.CloneWithMutation()
	}
	return child
}

// ApplyFailedReproduce pays only the reproduction action cost.
func (a *Animal) ApplyFailedReproduce() {
	a.spend(a.Params.Rates.Reproduce * a.Params.HomeostasisCost)
}

// ApplyInactivity pays the baseline homeostasis cost.
func (a *Animal) ApplyInactivity() {
	a.spend(a.Params.HomeostasisCost)
}

// BeEaten releases a share of a herbivore's energy and kills it.
// Carnivores are inedible and release nothing.
func (a *Animal) BeEaten() float32 {
	if a.Species != Herbivore {
		return 0
	}
	released := a.Params.EatenEnergyShare * a.Energy
	a.Energy = 0
	a.Eaten = true
	return released
}

func (a *Animal) spend(cost float32) {
	a.Energy = clamp(a.Energy-cost, a.Params.MaxEnergy)
}

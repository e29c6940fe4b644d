package components

import (
	"math"
	"testing"
)

// fixedPolicy always returns the same action and counts clones.
type fixedPolicy struct {
	action Action
	clones *int
}

func (f fixedPolicy) Decide(Perception) Action { return f.action }

func (f fixedPolicy) CloneWithMutation() Policy {
	if f.clones != nil {
		*f.clones++
	}
	return f
}

func testAnimalParams() AnimalParams {
	return AnimalParams{
		MaxEnergy:           60,
		BirthEnergy:         25,
		HomeostasisCost:     0.5,
		EatenEnergyShare:    0.3,
		ReproduceEnergyRate: 0.9,
		AllowReproduction:   true,
		Rates:               ActionRates{Turn: 1, Move: 2, Eat: 1, Reproduce: 4},
	}
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestDirectionTurns(t *testing.T) {
	tests := []struct {
		from        Direction
		left, right Direction
	}{
		{North, West, East},
		{South, East, West},
		{East, North, South},
		{West, South, North},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			if got := tt.from.Left(); got != tt.left {
				t.Errorf("%v.Left() = %v, want %v", tt.from, got, tt.left)
			}
			if got := tt.from.Right(); got != tt.right {
				t.Errorf("%v.Right() = %v, want %v", tt.from, got, tt.right)
			}
			if got := tt.from.Left().Right(); got != tt.from {
				t.Errorf("left then right = %v, want %v", got, tt.from)
			}
		})
	}
}

func TestDirectionDelta(t *testing.T) {
	want := map[Direction][2]int{
		North: {0, -1},
		South: {0, 1},
		East:  {1, 0},
		West:  {-1, 0},
	}
	for d, w := range want {
		dx, dy := d.Delta()
		if dx != w[0] || dy != w[1] {
			t.Errorf("%v.Delta() = (%d,%d), want (%d,%d)", d, dx, dy, w[0], w[1])
		}
	}
}

func TestPerceptionIndex(t *testing.T) {
	var p Perception
	p.Add(SensePlant, RegionFront)
	p.Add(SenseHerbivore, RegionProximity)
	p.Add(SenseCarnivore, RegionRight)
	p.Add(SenseCarnivore, RegionRight)

	if p[0] != 1 {
		t.Errorf("plant front at index 0 = %d, want 1", p[0])
	}
	if p[7] != 1 {
		t.Errorf("herbivore proximity at index 7 = %d, want 1", p[7])
	}
	if got := p.Count(SenseCarnivore, RegionRight); got != 2 {
		t.Errorf("carnivore right = %d, want 2", got)
	}
}

func TestPlantIntend(t *testing.T) {
	params := PlantParams{MaxEnergy: 10, EatenEnergy: 4, ReproduceEnergyRate: 0.5}

	tests := []struct {
		name   string
		energy float32
		repro  bool
		want   PlantAction
	}{
		{"empty grows", 0, false, PlantGrow},
		{"partial grows", 6, false, PlantGrow},
		{"full idles", 10, false, PlantNone},
		{"above threshold reproduces", 6, true, PlantReproduce},
		{"at threshold grows", 5, true, PlantGrow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pp := params
			pp.AllowReproduction = tt.repro
			p := NewPlant(pp, tt.energy)
			if got := p.Intend(); got != tt.want {
				t.Errorf("Intend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlantGrowClamps(t *testing.T) {
	p := NewPlant(PlantParams{MaxEnergy: 10}, 8)
	p.Grow(5)
	if p.Energy != 10 {
		t.Errorf("Energy = %v, want 10", p.Energy)
	}
}

func TestPlantBeEaten(t *testing.T) {
	tests := []struct {
		name              string
		energy, bite      float32
		released, remains float32
	}{
		{"partial bite", 10, 4, 4, 6},
		{"exact bite", 4, 4, 4, 0},
		{"bite exceeds remainder", 3, 4, 3, 0},
		{"already eaten", 0, 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlant(PlantParams{MaxEnergy: 10, EatenEnergy: tt.bite}, tt.energy)
			got := p.BeEaten()
			if !approx(got, tt.released) {
				t.Errorf("released %v, want %v", got, tt.released)
			}
			if !approx(p.Energy, tt.remains) {
				t.Errorf("remaining %v, want %v", p.Energy, tt.remains)
			}
			if p.Energy < 0 {
				t.Errorf("energy went negative: %v", p.Energy)
			}
			if (p.Energy == 0) != p.IsEaten() {
				t.Errorf("IsEaten() = %v with energy %v", p.IsEaten(), p.Energy)
			}
		})
	}
}

func TestPlantReproduce(t *testing.T) {
	p := NewPlant(PlantParams{MaxEnergy: 10, AllowReproduction: true, ReproduceEnergyRate: 0.5}, 9)
	child := p.Reproduce()
	if child.Energy != 0 {
		t.Errorf("seedling energy = %v, want 0", child.Energy)
	}
	if p.Energy != 9 {
		t.Errorf("parent energy changed to %v", p.Energy)
	}
}

func TestAnimalIntendAction(t *testing.T) {
	params := testAnimalParams()

	a := NewAnimal(Herbivore, params, North, fixedPolicy{action: ActionMove})
	if got := a.IntendAction(Perception{}); got != ActionMove {
		t.Errorf("IntendAction = %v, want move", got)
	}
	if !a.Processed {
		t.Error("IntendAction should mark the animal processed")
	}
	if a.Age != 1 {
		t.Errorf("Age = %d, want 1", a.Age)
	}

	a.Energy = 55 // above 0.9 * 60
	if got := a.IntendAction(Perception{}); got != ActionReproduce {
		t.Errorf("IntendAction above threshold = %v, want reproduce", got)
	}

	a.Params.AllowReproduction = false
	if got := a.IntendAction(Perception{}); got != ActionMove {
		t.Errorf("IntendAction with reproduction forbidden = %v, want move", got)
	}
}

func TestAnimalCosts(t *testing.T) {
	params := testAnimalParams()

	tests := []struct {
		name  string
		apply func(a *Animal)
		want  float32
	}{
		{"turn", func(a *Animal) { a.ApplyTurn(true) }, 20 - 0.5},
		{"move succeeded", func(a *Animal) { a.ApplyMove(true) }, 20 - 1},
		{"move blocked", func(a *Animal) { a.ApplyMove(false) }, 20 - 1},
		{"eat miss", func(a *Animal) { a.ApplyEat(0) }, 20 - 0.5},
		{"eat gain", func(a *Animal) { a.ApplyEat(10) }, 20 - 0.5 + 10},
		{"failed reproduce", func(a *Animal) { a.ApplyFailedReproduce() }, 20 - 2},
		{"inactivity", func(a *Animal) { a.ApplyInactivity() }, 20 - 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnimal(Herbivore, params, North, nil)
			a.Energy = 20
			tt.apply(&a)
			if !approx(a.Energy, tt.want) {
				t.Errorf("Energy = %v, want %v", a.Energy, tt.want)
			}
		})
	}
}

func TestAnimalEnergyBounds(t *testing.T) {
	a := NewAnimal(Herbivore, testAnimalParams(), North, nil)

	a.Energy = 59
	a.ApplyEat(100)
	if a.Energy != a.Params.MaxEnergy {
		t.Errorf("Energy = %v, want clamp to %v", a.Energy, a.Params.MaxEnergy)
	}

	a.Energy = 0.1
	a.ApplyMove(true)
	if a.Energy != 0 {
		t.Errorf("Energy = %v, want clamp to 0", a.Energy)
	}
	if !a.IsDead() {
		t.Error("animal with zero energy should be dead")
	}
}

func TestAnimalReproduce(t *testing.T) {
	clones := 0
	params := testAnimalParams()
	parent := NewAnimal(Carnivore, params, East, fixedPolicy{action: ActionEat, clones: &clones})
	parent.Energy = 58
	parent.Generation = 3
	parent.Params.AllowReproduction = false

	child := parent.ApplyReproduce()

	if !approx(parent.Energy, 58-2-25) {
		t.Errorf("parent energy = %v, want %v", parent.Energy, 58-2-25)
	}
	if child.Energy != params.BirthEnergy {
		t.Errorf("child energy = %v, want %v", child.Energy, params.BirthEnergy)
	}
	if child.Generation != parent.Generation+1 {
		t.Errorf("child generation = %d, want %d", child.Generation, parent.Generation+1)
	}
	if child.Age != 0 || child.Processed || child.Eaten {
		t.Errorf("child state not fresh: %+v", child)
	}
	if !child.Params.AllowReproduction {
		t.Error("child must be allowed to reproduce")
	}
	if child.Species != Carnivore {
		t.Errorf("child species = %v", child.Species)
	}
	if clones != 1 {
		t.Errorf("brain cloned %d times, want 1", clones)
	}
}

func TestAnimalBeEaten(t *testing.T) {
	params := testAnimalParams()

	herb := NewAnimal(Herbivore, params, North, nil)
	herb.Energy = 40
	released := herb.BeEaten()
	if !approx(released, 0.3*40) {
		t.Errorf("released = %v, want %v", released, 0.3*40)
	}
	if herb.Energy != 0 || !herb.Eaten || !herb.IsDead() {
		t.Errorf("eaten herbivore state = %+v", herb)
	}

	carn := NewAnimal(Carnivore, params, North, nil)
	carn.Energy = 40
	if got := carn.BeEaten(); got != 0 {
		t.Errorf("carnivore released %v, want 0", got)
	}
	if carn.Energy != 40 || carn.Eaten {
		t.Errorf("carnivore should be unaffected: %+v", carn)
	}
}

// Package components defines the agent components stored in the ECS world.
package components

// Species distinguishes the two animal kinds.
type Species uint8

const (
	Herbivore Species = iota
	Carnivore
)

// NumSpecies is the number of animal species.
const NumSpecies = 2

func (s Species) String() string {
	switch s {
	case Herbivore:
		return "herbivore"
	case Carnivore:
		return "carnivore"
	default:
		return "unknown"
	}
}

// Direction is an animal's facing on the grid. North is toward y-1.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every facing, for random placement and exhaustive tests.
var Directions = [4]Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Left returns the facing after a 90 degree left turn.
func (d Direction) Left() Direction {
	switch d {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	default:
		return North
	}
}

// Right returns the facing after a 90 degree right turn.
func (d Direction) Right() Direction {
	switch d {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	default:
		return North
	}
}

// Delta returns the unit step for moving one cell forward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	default:
		return -1, 0
	}
}

// Action is what an animal intends to do this tick.
type Action uint8

const (
	ActionNone Action = iota
	ActionTurnLeft
	ActionTurnRight
	ActionMove
	ActionEat
	ActionReproduce
)

// DecisionActions maps decision engine output indices to actions.
// Reproduction is never chosen by a policy.
var DecisionActions = [4]Action{ActionTurnLeft, ActionTurnRight, ActionMove, ActionEat}

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionTurnLeft:
		return "turn_left"
	case ActionTurnRight:
		return "turn_right"
	case ActionMove:
		return "move"
	case ActionEat:
		return "eat"
	case ActionReproduce:
		return "reproduce"
	default:
		return "unknown"
	}
}

// PlantAction is what a plant intends to do this tick.
type PlantAction uint8

const (
	PlantNone PlantAction = iota
	PlantGrow
	PlantReproduce
)

// Policy maps a perception to an action. Implementations hold their own
// mutable state and are cloned, with mutation, for offspring.
type Policy interface {
	Decide(p Perception) Action
	CloneWithMutation() Policy
}

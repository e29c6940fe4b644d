package game

import (
	"errors"
	"fmt"
)

// Recoverable outcomes. Inside a tick these make the attempted action
// silently not happen.
var (
	ErrPopulationCeiling = errors.New("population ceiling reached")
	ErrNoEmptyCell       = errors.New("no empty cell")
	ErrCellTaken         = errors.New("cell already occupied")
	ErrOutOfBounds       = errors.New("coordinates out of bounds")
	ErrInvalidSize       = errors.New("invalid landscape size")
)

// ErrInvariant is wrapped by every InvariantError.
var ErrInvariant = errors.New("internal invariant violated")

// InvariantError reports a broken internal-consistency rule. The landscape
// state is unreliable once one is returned and the run must stop.
type InvariantError struct {
	Op     string
	X, Y   int
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s at (%d,%d): %s: %v", e.Op, e.X, e.Y, e.Detail, ErrInvariant)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

func invariant(op string, x, y int, detail string) error {
	return &InvariantError{Op: op, X: x, Y: y, Detail: detail}
}

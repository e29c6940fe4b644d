package neural

import (
	"fmt"
	"math/rand"
)

// Selection turns output scores into a chosen index.
type Selection uint8

const (
	// SelectWeighted draws among positive scores in proportion to their size.
	SelectWeighted Selection = iota
	// SelectWinnerTakeAll picks the highest positive score.
	SelectWinnerTakeAll
)

// ParseSelection converts a config name to a Selection.
func ParseSelection(name string) (Selection, error) {
	switch name {
	case "", "weighted":
		return SelectWeighted, nil
	case "winner_take_all":
		return SelectWinnerTakeAll, nil
	default:
		return 0, fmt.Errorf("unknown selection %q", name)
	}
}

func (s Selection) String() string {
	if s == SelectWinnerTakeAll {
		return "winner_take_all"
	}
	return "weighted"
}

// choose returns the selected index, or -1 when no score is positive.
func (s Selection) choose(scores []float64, rng *rand.Rand) int {
	if s == SelectWinnerTakeAll {
		return winnerTakeAll(scores)
	}
	return WeightedDraw(scores, rng.Float64())
}

// WeightedDraw picks among positive scores. u is a uniform sample in
// [0, 1); the draw is u·Σ(positive scores) and the first index whose
// running sum exceeds it wins. Returns -1 when no score is positive.
func WeightedDraw(scores []float64, u float64) int {
	var total float64
	last := -1
	for i, s := range scores {
		if s > 0 {
			total += s
			last = i
		}
	}
	if last < 0 {
		return -1
	}

	draw := u * total
	var running float64
	for i, s := range scores {
		if s <= 0 {
			continue
		}
		running += s
		if running > draw {
			return i
		}
	}
	// Rounding can leave the draw equal to the total
	return last
}

func winnerTakeAll(scores []float64) int {
	best := -1
	for i, s := range scores {
		if s > 0 && (best < 0 || s > scores[best]) {
			best = i
		}
	}
	return best
}

// Package neural provides the linear decision engine that drives animals.
package neural

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/landscape/components"
)

// Network dimensions.
const (
	NumInputs  = components.PerceptionSize
	NumOutputs = len(components.DecisionActions)
)

// Options configures a Brain.
type Options struct {
	Selection Selection
	Mutations int // Entries replaced per clone (min 1)
}

// Brain is a single-layer linear model: scores = W·perception + b.
// The four scores map to TurnLeft, TurnRight, Move and Eat.
type Brain struct {
	weights *mat.Dense    // NumOutputs x NumInputs
	bias    *mat.VecDense // NumOutputs

	opts Options
	rng  *rand.Rand
}

// NewBrain creates a brain with weights and biases uniform in [-1, 1].
func NewBrain(rng *rand.Rand, opts Options) *Brain {
	w := make([]float64, NumOutputs*NumInputs)
	for i := range w {
		w[i] = randomWeight(rng)
	}
	b := make([]float64, NumOutputs)
	for i := range b {
		b[i] = randomWeight(rng)
	}
	return newBrain(rng, w, b, opts)
}

// NewBrainFromWeights creates a brain from row-major weights and biases.
func NewBrainFromWeights(rng *rand.Rand, weights, bias []float64, opts Options) (*Brain, error) {
	if len(weights) != NumOutputs*NumInputs {
		return nil, fmt.Errorf("weights: got %d values, want %d", len(weights), NumOutputs*NumInputs)
	}
	if len(bias) != NumOutputs {
		return nil, fmt.Errorf("bias: got %d values, want %d", len(bias), NumOutputs)
	}
	return newBrain(rng, append([]float64(nil), weights...), append([]float64(nil), bias...), opts), nil
}

func newBrain(rng *rand.Rand, w, b []float64, opts Options) *Brain {
	if opts.Mutations < 1 {
		opts.Mutations = 1
	}
	return &Brain{
		weights: mat.NewDense(NumOutputs, NumInputs, w),
		bias:    mat.NewVecDense(NumOutputs, b),
		opts:    opts,
		rng:     rng,
	}
}

// Scores computes the raw output scores for a perception.
func (b *Brain) Scores(p components.Perception) [NumOutputs]float64 {
	in := make([]float64, NumInputs)
	for i, c := range p {
		in[i] = float64(c)
	}

	var out mat.VecDense
	out.MulVec(b.weights, mat.NewVecDense(NumInputs, in))
	out.AddVec(&out, b.bias)

	var scores [NumOutputs]float64
	for i := range scores {
		scores[i] = out.AtVec(i)
	}
	return scores
}

// Decide implements components.Policy.
func (b *Brain) Decide(p components.Perception) components.Action {
	scores := b.Scores(p)
	idx := b.opts.Selection.choose(scores[:], b.rng)
	if idx < 0 {
		return components.ActionNone
	}
	return components.DecisionActions[idx]
}

// CloneWithMutation implements components.Policy. The clone shares the
// random source and replaces Mutations entries with new values.
func (b *Brain) CloneWithMutation() components.Policy {
	c := &Brain{
		weights: mat.DenseCopyOf(b.weights),
		bias:    mat.VecDenseCopyOf(b.bias),
		opts:    b.opts,
		rng:     b.rng,
	}
	for range c.opts.Mutations {
		c.mutateOne()
	}
	return c
}

// mutateOne replaces one weight or bias with a different random value.
func (b *Brain) mutateOne() {
	idx := b.rng.Intn(NumOutputs*NumInputs + NumOutputs)

	if idx < NumOutputs*NumInputs {
		r, c := idx/NumInputs, idx%NumInputs
		old := b.weights.At(r, c)
		b.weights.Set(r, c, freshWeight(b.rng, old))
		return
	}
	i := idx - NumOutputs*NumInputs
	b.bias.SetVec(i, freshWeight(b.rng, b.bias.AtVec(i)))
}

// Weights returns copies of the row-major weights and the biases.
func (b *Brain) Weights() (weights, bias []float64) {
	weights = make([]float64, 0, NumOutputs*NumInputs)
	for r := range NumOutputs {
		weights = append(weights, mat.Row(nil, r, b.weights)...)
	}
	bias = make([]float64, NumOutputs)
	for i := range bias {
		bias[i] = b.bias.AtVec(i)
	}
	return weights, bias
}

func randomWeight(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}

func freshWeight(rng *rand.Rand, old float64) float64 {
	for {
		if w := randomWeight(rng); w != old {
			return w
		}
	}
}

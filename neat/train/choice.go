package train

import (
	"fmt"
	"math/rand"

	"github.com/baldhumanity/neat-trainer/neat"
)

// RandomChoice samples named outcomes in proportion to their weights.
type RandomChoice struct {
	names   []string
	weights []float64
	total   float64
}

// NewRandomChoice builds a sampler. Weights must be non-negative and not all zero.
func NewRandomChoice(names []string, weights []float64) (*RandomChoice, error) {
	if len(names) != len(weights) {
		return nil, fmt.Errorf("%w: %d outcomes but %d weights", neat.ErrConfiguration, len(names), len(weights))
	}
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: outcome %q has negative weight %v", neat.ErrConfiguration, names[i], w)
		}
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: outcome weights sum to zero", neat.ErrConfiguration)
	}
	return &RandomChoice{
		names:   append([]string(nil), names...),
		weights: append([]float64(nil), weights...),
		total:   total,
	}, nil
}

// Generate returns the index of a sampled outcome. Zero-weight outcomes are
// never returned.
func (c *RandomChoice) Generate(rng *rand.Rand) int {
	r := rng.Float64() * c.total
	sum := 0.0
	for i, w := range c.weights {
		sum += w
		if w > 0 && r < sum {
			return i
		}
	}
	// Rounding left r at the very top of the range.
	for i := len(c.weights) - 1; i >= 0; i-- {
		if c.weights[i] > 0 {
			return i
		}
	}
	return 0
}

// Name returns the name of outcome i.
func (c *RandomChoice) Name(i int) string {
	return c.names[i]
}

// Len returns the number of outcomes.
func (c *RandomChoice) Len() int {
	return len(c.names)
}

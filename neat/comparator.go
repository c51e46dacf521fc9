package neat

import "math"

// Comparator orders scores for a run. With Minimize set lower scores are
// better, otherwise higher scores are better.
type Comparator struct {
	Minimize bool
}

// Compare returns a negative number when a is better than b, a positive
// number when b is better, and 0 when they tie.
func (c Comparator) Compare(a, b float64) int {
	switch {
	case a == b:
		return 0
	case c.IsBetterThan(a, b):
		return -1
	default:
		return 1
	}
}

// IsBetterThan reports whether a is strictly better than b.
func (c Comparator) IsBetterThan(a, b float64) bool {
	if c.Minimize {
		return a < b
	}
	return a > b
}

// ApplyBonus makes a score better by the given fraction.
func (c Comparator) ApplyBonus(value, bonus float64) float64 {
	if c.Minimize {
		return value - value*bonus
	}
	return value + value*bonus
}

// ApplyPenalty makes a score worse by the given fraction.
func (c Comparator) ApplyPenalty(value, penalty float64) float64 {
	if c.Minimize {
		return value + value*penalty
	}
	return value - value*penalty
}

// WorstScore is the score every real score beats.
func (c Comparator) WorstScore() float64 {
	if c.Minimize {
		return math.Inf(1)
	}
	return math.Inf(-1)
}

// LessGenome orders genomes best first by raw score.
func (c Comparator) LessGenome(a, b *Genome) bool {
	return c.IsBetterThan(a.Score, b.Score)
}

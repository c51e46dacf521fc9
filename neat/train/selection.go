package train

import (
	"math/rand"

	"github.com/baldhumanity/neat-trainer/neat"
)

// tournament draws k genomes with replacement and returns the one with the
// highest raw score. The first draw wins ties.
func tournament(rng *rand.Rand, genomes []*neat.Genome, k int) *neat.Genome {
	best := genomes[rng.Intn(len(genomes))]
	for i := 1; i < k; i++ {
		g := genomes[rng.Intn(len(genomes))]
		if g.Score > best.Score {
			best = g
		}
	}
	return best
}

// tournamentSize is the configured size, or a fifth of the population.
func (t *Trainer) tournamentSize() int {
	k := t.config.Reproduction.TournamentSize
	if k <= 0 {
		k = t.pop.Size() / 5
	}
	return max(k, 1)
}

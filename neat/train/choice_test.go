package train

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neat-trainer/neat"
)

func TestRandomChoice(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	c, err := NewRandomChoice([]string{"a", "b", "c", "d"}, []float64{3, 0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, "c", c.Name(2))

	counts := make([]int, c.Len())
	for i := 0; i < 4000; i++ {
		counts[c.Generate(rng)]++
	}
	assert.Zero(t, counts[1])
	assert.Zero(t, counts[3])
	assert.InDelta(t, 3000, counts[0], 200)
	assert.InDelta(t, 1000, counts[2], 200)
}

func TestRandomChoiceErrors(t *testing.T) {
	_, err := NewRandomChoice([]string{"a"}, []float64{1, 2})
	assert.ErrorIs(t, err, neat.ErrConfiguration)
	_, err = NewRandomChoice([]string{"a", "b"}, []float64{1, -2})
	assert.ErrorIs(t, err, neat.ErrConfiguration)
	_, err = NewRandomChoice([]string{"a", "b"}, []float64{0, 0})
	assert.ErrorIs(t, err, neat.ErrConfiguration)
}

func TestTournament(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	genomes := []*neat.Genome{{ID: 1, Score: 0.2}, {ID: 2, Score: 0.9}, {ID: 3, Score: -4}}

	for i := 0; i < 20; i++ {
		// 100 draws over three genomes all but guarantee the best is drawn.
		assert.Equal(t, 2, tournament(rng, genomes, 100).ID)
	}

	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		seen[tournament(rng, genomes, 1).ID] = true
	}
	assert.Len(t, seen, 3, "a single draw returns whatever was drawn")

	// Higher raw scores win even when lower scores are better for the run.
	negative := []*neat.Genome{{ID: 1, Score: -3}, {ID: 2, Score: -1}}
	assert.Equal(t, 2, tournament(rng, negative, 100).ID)
}

func TestTournamentSize(t *testing.T) {
	tr := newTestTrainer(t, constantScore(true), 23, nil)
	assert.Equal(t, 4, tr.tournamentSize())

	tr = newTestTrainer(t, constantScore(true), 4, nil)
	assert.Equal(t, 1, tr.tournamentSize())

	tr = newTestTrainer(t, constantScore(true), 10, func(c *neat.Config) { c.Reproduction.TournamentSize = 7 })
	assert.Equal(t, 7, tr.tournamentSize())
}

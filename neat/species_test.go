package neat

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredGenomes(scores ...float64) []*Genome {
	genomes := make([]*Genome, len(scores))
	for i, s := range scores {
		genomes[i] = &Genome{ID: i + 1, Score: s, SpeciesID: -1}
	}
	return genomes
}

func TestNewSpecies(t *testing.T) {
	g := scoredGenomes(4)[0]
	s := NewSpecies(3, g)

	assert.Equal(t, 3, g.SpeciesID)
	assert.Same(t, g, s.Leader())
	assert.Equal(t, 4.0, s.BestScore)
	assert.Equal(t, 0, s.Age)
}

func TestSpeciesLeader(t *testing.T) {
	gs := scoredGenomes(1, 5, 3)
	s := NewSpecies(1, gs[0])
	s.AddMember(gs[1])
	s.AddMember(gs[2])
	assert.Same(t, gs[0], s.Leader(), "adding members does not move the leader")

	s.GensNoImprovement = 4
	s.SetLeader(gs[1])
	assert.Same(t, gs[1], s.Leader())
	assert.Equal(t, 5.0, s.BestScore)
	assert.Equal(t, 0, s.GensNoImprovement)
	assert.Equal(t, 1, gs[2].SpeciesID)
}

func TestSpeciesPurge(t *testing.T) {
	gs := scoredGenomes(1, 5, 3)
	s := NewSpecies(1, gs[0])
	s.AddMember(gs[1])
	s.AddMember(gs[2])
	s.SetLeader(gs[1])
	s.SpawnsRequired = 2.5

	s.Purge()
	require.Len(t, s.Members, 1)
	assert.Same(t, gs[1], s.Members[0])
	assert.Equal(t, 1, s.Age)
	assert.Equal(t, 1, s.GensNoImprovement)
	assert.Zero(t, s.SpawnsRequired)

	s.Members = nil
	s.Purge()
	assert.Empty(t, s.Members)
	assert.Nil(t, s.Leader())
}

func TestChooseParent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	gs := scoredGenomes(1, 5, 3, 2, 4)
	s := NewSpecies(1, gs[0])
	for _, g := range gs[1:] {
		s.AddMember(g)
	}

	for i := 0; i < 20; i++ {
		assert.Same(t, gs[1], s.ChooseParent(rng, Comparator{}, 0))
		assert.Same(t, gs[0], s.ChooseParent(rng, Comparator{Minimize: true}, 0))
	}

	// 0.4 of five members plus one: the top three.
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		seen[s.ChooseParent(rng, Comparator{}, 0.4).ID] = true
	}
	assert.Equal(t, map[int]bool{2: true, 5: true, 3: true}, seen)

	assert.Nil(t, (&Species{}).ChooseParent(rng, Comparator{}, 0.2))
}

func TestSpawnAmount(t *testing.T) {
	gs := scoredGenomes(1, 1, 1)
	s := NewSpecies(1, gs[0])
	s.AddMember(gs[1])
	s.AddMember(gs[2])
	gs[0].AmountToSpawn = 0.9
	gs[1].AmountToSpawn = 1.2
	gs[2].AmountToSpawn = 0.4

	s.CalculateSpawnAmount()
	assert.InDelta(t, 2.5, s.SpawnsRequired, 1e-12)
	assert.Equal(t, 3, s.NumToSpawn())

	tests := []struct {
		spawns float64
		want   int
	}{
		{0.49, 0},
		{1.5, 2},
		{-3, 0},
		{math.NaN(), 0},
		{math.Inf(1), math.MaxInt32},
	}
	for _, tt := range tests {
		s.SpawnsRequired = tt.spawns
		assert.Equal(t, tt.want, s.NumToSpawn(), "spawns %v", tt.spawns)
	}
}

package neat

import (
	"math"
	"math/rand"
	"sort"
)

// Species represents a group of genetically similar genomes clustered around
// a leader. The leader is referenced by ID and is always one of the members.
type Species struct {
	ID                int
	LeaderID          int
	Members           []*Genome
	Age               int     // Generations this species has existed.
	BestScore         float64 // Best score any leader of this species reached.
	GensNoImprovement int
	SpawnsRequired    float64
}

// NewSpecies creates a species with the given genome as its only member and leader.
func NewSpecies(id int, leader *Genome) *Species {
	leader.SpeciesID = id
	return &Species{
		ID:        id,
		LeaderID:  leader.ID,
		Members:   []*Genome{leader},
		BestScore: leader.Score,
	}
}

// Leader returns the current leader genome, or nil if it is no longer a member.
func (s *Species) Leader() *Genome {
	for _, m := range s.Members {
		if m.ID == s.LeaderID {
			return m
		}
	}
	return nil
}

// AddMember appends a genome to the species without touching the leader.
func (s *Species) AddMember(g *Genome) {
	g.SpeciesID = s.ID
	s.Members = append(s.Members, g)
}

// SetLeader makes g, which must be a member, the leader and records its score
// as the species' best, resetting the no-improvement counter.
func (s *Species) SetLeader(g *Genome) {
	s.LeaderID = g.ID
	s.BestScore = g.Score
	s.GensNoImprovement = 0
}

// Purge starts a new generation for the species: every member except the
// leader is dropped and the age and no-improvement counters advance.
func (s *Species) Purge() {
	leader := s.Leader()
	s.Members = s.Members[:0]
	if leader != nil {
		s.Members = append(s.Members, leader)
	}
	s.Age++
	s.GensNoImprovement++
	s.SpawnsRequired = 0
}

// ChooseParent picks a parent uniformly from the best survivalRate fraction
// of the members (always at least the best one). Returns nil for an empty species.
func (s *Species) ChooseParent(rng *rand.Rand, cmp Comparator, survivalRate float64) *Genome {
	if len(s.Members) == 0 {
		return nil
	}
	ranked := make([]*Genome, len(s.Members))
	copy(ranked, s.Members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return cmp.LessGenome(ranked[i], ranked[j])
	})

	pool := int(math.Floor(survivalRate*float64(len(ranked)))) + 1
	if pool > len(ranked) {
		pool = len(ranked)
	}
	return ranked[rng.Intn(pool)]
}

// CalculateSpawnAmount sums the members' spawn quotas into SpawnsRequired.
func (s *Species) CalculateSpawnAmount() {
	s.SpawnsRequired = 0
	for _, m := range s.Members {
		s.SpawnsRequired += m.AmountToSpawn
	}
}

// NumToSpawn rounds SpawnsRequired to the nearest whole offspring count.
func (s *Species) NumToSpawn() int {
	n := math.Round(s.SpawnsRequired)
	switch {
	case math.IsNaN(n) || n <= 0:
		return 0
	case n > math.MaxInt32:
		return math.MaxInt32
	}
	return int(n)
}

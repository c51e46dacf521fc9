package train

import (
	"math"

	"github.com/baldhumanity/neat-trainer/neat"
)

// speciate assigns every genome to the first species whose leader is within
// the compatibility threshold, founding new species for the rest, and then
// works out how many offspring each genome and species earns.
func (t *Trainer) speciate() {
	t.adjustCompatibilityThreshold()

	pop := t.pop
	coefficients := t.config.SpeciesSet.Coefficients()

	// Leaders kept through the purge are already placed.
	placed := make(map[*neat.Genome]bool, len(pop.Species))
	for _, s := range pop.Species {
		for _, m := range s.Members {
			placed[m] = true
		}
	}

	for _, g := range pop.Genomes {
		if placed[g] {
			continue
		}
		g.SpeciesID = -1
		for _, s := range pop.Species {
			leader := s.Leader()
			if leader != nil && g.CompatibilityDistance(leader, coefficients) <= t.threshold {
				t.addSpeciesMember(s, g)
				break
			}
		}
		if g.SpeciesID < 0 {
			s := neat.NewSpecies(pop.AssignSpeciesID(), g)
			pop.Species = append(pop.Species, s)
			t.log().WithField("species", s.ID).WithField("leader", g.ID).Debug("Species created")
		}
	}

	t.adjustSpeciesScore()

	// Genomes without a usable score earn nothing and stay out of the average.
	scored := 0
	for _, g := range pop.Genomes {
		if !finite(g.Score) {
			continue
		}
		t.totalFitAdjustment += g.AdjustedScore
		scored++
	}
	if scored > 0 {
		t.averageFitAdjustment = t.totalFitAdjustment / float64(scored)
	}

	for _, g := range pop.Genomes {
		if t.averageFitAdjustment == 0 {
			g.AmountToSpawn = 1.0
		} else {
			g.AmountToSpawn = g.AdjustedScore / t.averageFitAdjustment
		}
	}
	for _, s := range pop.Species {
		s.CalculateSpawnAmount()
	}
}

// addSpeciesMember adds g to s and makes it the leader when its raw score
// beats the current leader's. The species' best score and no-improvement
// counter only move when g also beats the best score on record.
func (t *Trainer) addSpeciesMember(s *neat.Species, g *neat.Genome) {
	s.AddMember(g)
	if leader := s.Leader(); leader != nil && !t.cmp.IsBetterThan(g.Score, leader.Score) {
		return
	}
	if t.cmp.IsBetterThan(g.Score, s.BestScore) {
		s.SetLeader(g)
		return
	}
	s.LeaderID = g.ID
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

package train

import (
	"github.com/sirupsen/logrus"

	"github.com/baldhumanity/neat-trainer/neat"
)

// thresholdStep is how far the compatibility threshold moves per generation.
const thresholdStep = 0.01

// resetAndKill purges every species down to its leader and removes the ones
// that lost their leader or stagnated below the best score ever seen.
func (t *Trainer) resetAndKill() {
	t.totalFitAdjustment = 0
	t.averageFitAdjustment = 0

	allowed := t.config.Stagnation.GensAllowedNoImprovement
	for _, s := range append([]*neat.Species(nil), t.pop.Species...) {
		s.Purge()

		switch {
		case !t.pop.Contains(s.LeaderID):
			t.extinguish(s, extinctLeaderLost)
		case s.GensNoImprovement > allowed && t.cmp.IsBetterThan(t.bestEverScore, s.BestScore):
			t.extinguish(s, extinctStagnant)
		}
	}
}

func (t *Trainer) extinguish(s *neat.Species, reason string) {
	t.pop.RemoveSpecies(s)
	t.metrics.Extinctions.WithLabelValues(reason).Inc()
	t.log().WithFields(logrus.Fields{
		"species": s.ID,
		"age":     s.Age,
		"reason":  reason,
	}).Debug("Species removed")
}

// adjustCompatibilityThreshold nudges the threshold so the species count
// stays between 2 and the configured maximum. A maximum below 1 disables it.
func (t *Trainer) adjustCompatibilityThreshold() {
	maxSpecies := t.config.SpeciesSet.MaxSpecies
	if maxSpecies < 1 {
		return
	}
	switch n := len(t.pop.Species); {
	case n > maxSpecies:
		t.threshold += thresholdStep
	case n < 2:
		t.threshold -= thresholdStep
	}
}

// adjustSpeciesScore applies the age bonus or penalty to every member's raw
// score and shares the result across the species. A member whose raw score
// is not finite gets an adjusted score of 0.
func (t *Trainer) adjustSpeciesScore() {
	pop := t.pop
	for _, s := range pop.Species {
		for _, g := range s.Members {
			if !finite(g.Score) {
				g.AdjustedScore = 0
				continue
			}
			score := g.Score
			if s.Age < pop.YoungBonusAgeThreshold {
				score = t.cmp.ApplyBonus(score, pop.YoungScoreBonus)
			}
			if s.Age > pop.OldAgeThreshold {
				score = t.cmp.ApplyPenalty(score, pop.OldAgePenalty)
			}
			g.AdjustedScore = score / float64(len(s.Members))
		}
	}
}

package train

import (
	"github.com/baldhumanity/neat-trainer/neat"
)

// crossoverAttempts is how many times a second parent is redrawn while it
// matches the first.
const crossoverAttempts = 5

// reproduce builds the next generation. Each species first passes its leader
// through unchanged and then breeds until its spawn budget is spent; any
// shortfall is filled by tournament selection over the current generation.
func (t *Trainer) reproduce() []*neat.Genome {
	pop := t.pop
	size := pop.Size()
	next := make([]*neat.Genome, 0, size)

	for _, s := range pop.Species {
		if len(next) >= size {
			break
		}
		chosenBest := false
		for n := s.NumToSpawn(); n > 0 && len(next) < size; n-- {
			var child *neat.Genome
			if !chosenBest {
				chosenBest = true
				if child = s.Leader(); child != nil {
					t.metrics.Offspring.WithLabelValues(offspringElite).Inc()
				}
			}
			if child == nil {
				child = t.breed(s)
				if child == nil {
					continue
				}
				child.ID = pop.AssignGenomeID()
				t.mutate(child)
			}
			child.SortGenes()
			next = append(next, child)
		}
	}

	k := t.tournamentSize()
	for len(next) < size {
		child := tournament(t.rng, pop.Genomes, k).Clone()
		child.ID = pop.AssignGenomeID()
		child.SortGenes()
		next = append(next, child)
		t.metrics.Offspring.WithLabelValues(offspringTournament).Inc()
	}
	return next
}

// breed produces one offspring from s, or nil when crossover was chosen but
// no second parent distinct from the first could be drawn.
func (t *Trainer) breed(s *neat.Species) *neat.Genome {
	survival := t.pop.SurvivalRate
	if len(s.Members) == 1 {
		t.metrics.Offspring.WithLabelValues(offspringClone).Inc()
		return s.ChooseParent(t.rng, t.cmp, survival).Clone()
	}

	mom := s.ChooseParent(t.rng, t.cmp, survival)
	if t.rng.Float64() >= t.config.Reproduction.CrossoverRate {
		t.metrics.Offspring.WithLabelValues(offspringClone).Inc()
		return mom.Clone()
	}

	dad := s.ChooseParent(t.rng, t.cmp, survival)
	for i := 0; i < crossoverAttempts && dad.ID == mom.ID; i++ {
		dad = s.ChooseParent(t.rng, t.cmp, survival)
	}
	if dad.ID == mom.ID {
		return nil
	}
	t.metrics.Offspring.WithLabelValues(offspringCrossover).Inc()
	return t.crossover(t.rng, mom, dad, t.cmp)
}

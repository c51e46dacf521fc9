package train

import (
	"github.com/baldhumanity/neat-trainer/neat"
)

// Mutation operator names, in the order of the configured operator weights.
const (
	opMutateWeights = "mutate_weights"
	opAddNode       = "add_node"
	opAddLink       = "add_link"
	opAdjustCurve   = "adjust_curve"
	opRemoveLink    = "remove_link"
)

var operatorNames = []string{opMutateWeights, opAddNode, opAddLink, opAdjustCurve, opRemoveLink}

// mutator applies one operator to a genome and reports whether it changed.
type mutator func(t *Trainer, g *neat.Genome) bool

func newMutators() []mutator {
	return []mutator{
		mutateWeights,
		addNode,
		addLink,
		func(*Trainer, *neat.Genome) bool { return false },
		removeLink,
	}
}

func mutateWeights(t *Trainer, g *neat.Genome) bool {
	m := t.config.Mutation
	g.MutateWeights(t.rng, m.MutationRate, m.ProbabilityWeightReplaced, m.MaxWeightPerturbation)
	return true
}

func addNode(t *Trainer, g *neat.Genome) bool {
	m := t.config.Mutation
	if g.NeuronCount() >= m.MaxPermittedNeurons {
		return false
	}
	return g.AddNeuron(t, m.ChanceAddNode, m.NumTrysToFindOldLink)
}

func addLink(t *Trainer, g *neat.Genome) bool {
	m := t.config.Mutation
	return g.AddLink(t, m.NumTrysToFindLoopedLink, m.NumAddLinkAttempts)
}

func removeLink(t *Trainer, g *neat.Genome) bool {
	return g.RemoveLink(t.rng)
}

// mutate picks one operator by weight and applies it.
func (t *Trainer) mutate(g *neat.Genome) {
	i := t.operators.Generate(t.rng)
	t.metrics.Mutations.WithLabelValues(t.operators.Name(i)).Inc()
	t.mutators[i](t, g)
}

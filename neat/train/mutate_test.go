package train

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neat-trainer/neat"
)

func TestMutateDispatch(t *testing.T) {
	tests := []struct {
		name     string
		weights  []float64
		operator string
		check    func(t *testing.T, before, after *neat.Genome)
	}{
		{"mutate weights", []float64{1, 0, 0, 0, 0}, opMutateWeights, func(t *testing.T, before, after *neat.Genome) {
			assert.Len(t, after.Links, len(before.Links))
			assert.NotEqual(t, before.Links, after.Links)
		}},
		{"add node", []float64{0, 1, 0, 0, 0}, opAddNode, func(t *testing.T, before, after *neat.Genome) {
			assert.Len(t, after.Neurons, len(before.Neurons)+1)
		}},
		{"adjust curve", []float64{0, 0, 0, 1, 0}, opAdjustCurve, func(t *testing.T, before, after *neat.Genome) {
			assert.Equal(t, before.Links, after.Links)
			assert.Equal(t, before.Neurons, after.Neurons)
		}},
		{"remove link", []float64{0, 0, 0, 0, 1}, opRemoveLink, func(t *testing.T, before, after *neat.Genome) {
			assert.Len(t, after.Links, len(before.Links)-1)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTrainer(t, constantScore(true), 10, func(c *neat.Config) {
				c.Mutation.OperatorWeights = tt.weights
				c.Mutation.ChanceAddNode = 1
				c.Mutation.MutationRate = 1
			})
			g := tr.pop.Get(0).Clone()
			before := g.Clone()

			tr.mutate(g)
			tt.check(t, before, g)
			assert.Equal(t, 1.0, testutil.ToFloat64(tr.metrics.Mutations.WithLabelValues(tt.operator)))
		})
	}
}

func TestAddNodeHonoursNeuronCap(t *testing.T) {
	tr := newTestTrainer(t, constantScore(true), 10, func(c *neat.Config) {
		c.Mutation.ChanceAddNode = 1
		c.Mutation.MaxPermittedNeurons = 4
	})
	g := tr.pop.Get(0).Clone()
	require.Equal(t, 4, g.NeuronCount())

	assert.False(t, addNode(tr, g))
	assert.Equal(t, 4, g.NeuronCount())

	tr.config.Mutation.MaxPermittedNeurons = 5
	assert.True(t, addNode(tr, g))
	assert.False(t, addNode(tr, g))
}

func TestAddLinkUsesTrainerChances(t *testing.T) {
	tr := newTestTrainer(t, constantScore(true), 10, func(c *neat.Config) {
		c.Mutation.ChanceAddLink = 1
		c.Mutation.ChanceAddRecurrentLink = 1
	})
	g := tr.pop.Get(0).Clone()

	require.True(t, addLink(tr, g))
	loop := g.Links[len(g.Links)-1]
	assert.Equal(t, loop.From, loop.To)
	assert.True(t, loop.Recurrent)
}

package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neat-trainer/neat"
)

var identity = Decoder{Activation: "identity", Aggregation: "sum"}

// newGenome builds a fully connected genome with the given link weights,
// listed input links first and the bias link last for each output.
func newGenome(t *testing.T, in, out int, weights ...float64) *neat.Genome {
	t.Helper()
	il := neat.NewInnovationList(in, out)
	g := neat.NewGenome(1, il, in, out, rand.New(rand.NewSource(1)))
	require.Len(t, g.Links, len(weights))
	for i := range g.Links {
		g.Links[i].Weight = weights[i]
	}
	return g
}

func TestComputeWeightedSum(t *testing.T) {
	// Links run from each source to every output: in0->out, in1->out, bias->out.
	g := newGenome(t, 2, 1, 0.5, -2, 0.25)
	net, err := identity.Decode(g)
	require.NoError(t, err)

	out, err := net.Compute([]float64{1, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.5-1+0.25, out[0], 1e-12)
	assert.Equal(t, 4, net.NeuronCount())
}

func TestComputeSigmoid(t *testing.T) {
	g := newGenome(t, 1, 1, 1, 0)
	net, err := NewDecoder(neat.DefaultConfig()).Decode(g)
	require.NoError(t, err)

	out, err := net.Compute([]float64{0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out[0], 1e-12)

	out, err = net.Compute([]float64{1})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-4.9)), out[0], 1e-12)
}

func TestComputeMultipleOutputs(t *testing.T) {
	// Sources in order in0, bias; each feeding out0 then out1.
	g := newGenome(t, 1, 2, 2, 3, 1, -1)
	net, err := identity.Decode(g)
	require.NoError(t, err)

	out, err := net.Compute([]float64{2})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5}, out)
}

func TestComputeThroughHiddenNeuron(t *testing.T) {
	g := newGenome(t, 1, 1, 3, 0)
	ctx := &mutationContext{il: neat.NewInnovationList(1, 1), rng: rand.New(rand.NewSource(1))}
	require.True(t, g.AddNeuron(ctx, 1, 5))
	g.SortGenes()

	net, err := identity.Decode(g)
	require.NoError(t, err)
	out, err := net.Compute([]float64{2})
	require.NoError(t, err)
	// in -> hidden (weight 1) -> out (weight 3); the split link is disabled.
	assert.InDelta(t, 6, out[0], 1e-12)
}

func TestRecurrentLinkCarriesState(t *testing.T) {
	g := newGenome(t, 1, 1, 1, 0)
	g.Neurons[2].Recurrent = true
	g.Links = append(g.Links, neat.LinkGene{InnovationID: 2, From: 2, To: 2, Weight: 1, Enabled: true, Recurrent: true})

	net, err := identity.Decode(g)
	require.NoError(t, err)

	for _, want := range []float64{1, 2, 3} {
		out, err := net.Compute([]float64{1})
		require.NoError(t, err)
		assert.InDelta(t, want, out[0], 1e-12)
	}

	net.ClearContext()
	out, err := net.Compute([]float64{1})
	require.NoError(t, err)
	assert.InDelta(t, 1, out[0], 1e-12)
}

func TestDecodeErrors(t *testing.T) {
	g := newGenome(t, 1, 1, 1, 0)

	_, err := Decoder{Activation: "wobble", Aggregation: "sum"}.Decode(g)
	assert.Error(t, err)
	_, err = Decoder{Activation: "identity", Aggregation: "wobble"}.Decode(g)
	assert.Error(t, err)

	g.Links = append(g.Links, neat.LinkGene{InnovationID: 9, From: 42, To: 2, Enabled: true})
	_, err = identity.Decode(g)
	assert.Error(t, err)
}

func TestComputeRejectsWrongInputCount(t *testing.T) {
	net, err := identity.Decode(newGenome(t, 2, 1, 1, 1, 1))
	require.NoError(t, err)

	_, err = net.Compute([]float64{1})
	assert.Error(t, err)
}

type mutationContext struct {
	il  *neat.InnovationList
	rng *rand.Rand
}

func (c *mutationContext) Innovations() *neat.InnovationList { return c.il }
func (c *mutationContext) Rand() *rand.Rand { return c.rng }
func (c *mutationContext) ChanceAddLink() float64 { return 0 }
func (c *mutationContext) ChanceAddRecurrentLink() float64 { return 0 }

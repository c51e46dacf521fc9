package train

import (
	"math"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neat-trainer/neat"
	"github.com/baldhumanity/neat-trainer/neat/nn"
)

func TestScoreAdapterDecodesOnce(t *testing.T) {
	g := neat.NewGenome(1, neat.NewInnovationList(2, 1), 2, 1, rand.New(rand.NewSource(1)))
	calls := 0
	var seen []*nn.Network
	adapter := &ScoreAdapter{
		Score: NewScoreFunc(func(net *nn.Network) float64 {
			calls++
			seen = append(seen, net)
			return 0.75
		}, false),
		Decoder: nn.NewDecoder(neat.DefaultConfig()),
	}

	assert.Equal(t, 0.75, adapter.Evaluate(g))
	require.NotNil(t, g.Phenotype)
	assert.Equal(t, 0.75, adapter.Evaluate(g))
	assert.Equal(t, 2, calls)
	assert.Same(t, seen[0], seen[1])
}

func TestScoreAdapterClearsContext(t *testing.T) {
	g := neat.NewGenome(1, neat.NewInnovationList(1, 1), 1, 1, rand.New(rand.NewSource(1)))
	g.Links[0].Weight, g.Links[1].Weight = 1, 0
	g.Neurons[2].Recurrent = true
	g.Links = append(g.Links, neat.LinkGene{InnovationID: 2, From: 2, To: 2, Weight: 1, Enabled: true, Recurrent: true})

	adapter := &ScoreAdapter{
		Score: NewScoreFunc(func(net *nn.Network) float64 {
			out, err := net.Compute([]float64{1})
			require.NoError(t, err)
			return out[0]
		}, false),
		Decoder: nn.Decoder{Activation: "identity", Aggregation: "sum"},
	}

	assert.Equal(t, 1.0, adapter.Evaluate(g))
	assert.Equal(t, 1.0, adapter.Evaluate(g), "state from the last evaluation is dropped")
}

func TestScoreAdapterDecodeFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	g := neat.NewGenome(3, neat.NewInnovationList(1, 1), 1, 1, rand.New(rand.NewSource(1)))

	for _, minimize := range []bool{false, true} {
		adapter := &ScoreAdapter{
			Score:   NewScoreFunc(func(*nn.Network) float64 { return 1 }, minimize),
			Decoder: nn.Decoder{Activation: "wobble", Aggregation: "sum"},
			Logger:  logger,
		}
		score := adapter.Evaluate(g)
		if minimize {
			assert.True(t, math.IsInf(score, 1))
		} else {
			assert.True(t, math.IsInf(score, -1))
		}
		assert.Nil(t, g.Phenotype)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, 3, entry.Data["genome"])
	}
}

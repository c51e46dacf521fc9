package train

import (
	"github.com/sirupsen/logrus"

	"github.com/baldhumanity/neat-trainer/neat"
	"github.com/baldhumanity/neat-trainer/neat/nn"
)

// CalculateScore rates a decoded network.
type CalculateScore interface {
	CalculateScore(network *nn.Network) float64
	// ShouldMinimize reports whether lower scores are better.
	ShouldMinimize() bool
}

// ScoreFunc adapts a plain function to CalculateScore.
type ScoreFunc struct {
	fn       func(network *nn.Network) float64
	minimize bool
}

// NewScoreFunc wraps fn; minimize selects the score direction.
func NewScoreFunc(fn func(network *nn.Network) float64, minimize bool) *ScoreFunc {
	return &ScoreFunc{fn: fn, minimize: minimize}
}

// CalculateScore calls the wrapped function.
func (s *ScoreFunc) CalculateScore(network *nn.Network) float64 {
	return s.fn(network)
}

// ShouldMinimize reports the direction given to NewScoreFunc.
func (s *ScoreFunc) ShouldMinimize() bool {
	return s.minimize
}

// ScoreAdapter scores genomes: it decodes the phenotype when the genome has
// none, clears the network's context, and hands it to the scorer.
type ScoreAdapter struct {
	Score   CalculateScore
	Decoder nn.Decoder
	Logger  logrus.FieldLogger
}

// Evaluate returns the genome's score. A genome that cannot be decoded gets
// the worst score for the scorer's direction.
func (a *ScoreAdapter) Evaluate(g *neat.Genome) float64 {
	net, ok := g.Phenotype.(*nn.Network)
	if !ok || net == nil {
		var err error
		net, err = a.Decoder.Decode(g)
		if err != nil {
			if a.Logger != nil {
				a.Logger.WithError(err).WithField("genome", g.ID).Warn("Genome could not be decoded")
			}
			g.Phenotype = nil
			return neat.Comparator{Minimize: a.Score.ShouldMinimize()}.WorstScore()
		}
		g.Phenotype = net
	}
	net.ClearContext()
	return a.Score.CalculateScore(net)
}

package train

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/baldhumanity/neat-trainer/neat"
	"github.com/baldhumanity/neat-trainer/neat/nn"
)

// Trainer evolves a NEAT population one generation per Iteration.
// It is not safe for concurrent use.
type Trainer struct {
	config     *neat.Config
	pop        *neat.Population
	adapter    *ScoreAdapter
	cmp        neat.Comparator
	rng        *rand.Rand
	baseLogger logrus.FieldLogger
	logger     logrus.FieldLogger
	registerer prometheus.Registerer
	metrics    *Metrics
	runID      string

	operators *RandomChoice
	mutators  []mutator
	crossover func(rng *rand.Rand, mom, dad *neat.Genome, cmp neat.Comparator) *neat.Genome

	generation           int
	threshold            float64
	totalFitAdjustment   float64
	averageFitAdjustment float64
	bestEverScore        float64
	bestEverNetwork      *nn.Network
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithConfig sets the run parameters. The default is neat.DefaultConfig().
func WithConfig(config *neat.Config) Option {
	return func(t *Trainer) {
		t.config = config
	}
}

// WithRand sets the random source used for every stochastic decision.
func WithRand(rng *rand.Rand) Option {
	return func(t *Trainer) {
		t.rng = rng
	}
}

// WithLogger sets the logger. The default is logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return func(t *Trainer) {
		t.baseLogger = logger
	}
}

// WithRegisterer registers the trainer's metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(t *Trainer) {
		t.registerer = reg
	}
}

// New creates a trainer with a fresh population of size genomes, each fully
// connecting inputCount inputs to outputCount outputs. The initial
// population is scored and speciated before New returns.
func New(score CalculateScore, inputCount, outputCount, size int, opts ...Option) (*Trainer, error) {
	if inputCount < 1 || outputCount < 1 {
		return nil, fmt.Errorf("%w: networks need at least one input and one output, got %d and %d",
			neat.ErrConfiguration, inputCount, outputCount)
	}
	if size < 2 {
		return nil, fmt.Errorf("%w: population size must be at least 2, got %d", neat.ErrConfiguration, size)
	}
	t, err := newTrainer(score, opts)
	if err != nil {
		return nil, err
	}
	if err := t.init(neat.NewPopulation(inputCount, outputCount, size, t.config, t.rng)); err != nil {
		return nil, err
	}
	return t, nil
}

// NewFromPopulation creates a trainer for an existing population. Every
// genome must share the population's input and output counts.
func NewFromPopulation(score CalculateScore, pop *neat.Population, opts ...Option) (*Trainer, error) {
	if pop == nil || len(pop.Genomes) == 0 {
		return nil, fmt.Errorf("%w: population is empty", neat.ErrConfiguration)
	}
	t, err := newTrainer(score, opts)
	if err != nil {
		return nil, err
	}
	if err := t.init(pop); err != nil {
		return nil, err
	}
	return t, nil
}

func newTrainer(score CalculateScore, opts []Option) (*Trainer, error) {
	t := &Trainer{
		config:     neat.DefaultConfig(),
		baseLogger: logrus.StandardLogger(),
		runID:      uuid.NewString(),
		crossover:  neat.Crossover,
		mutators:   newMutators(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if score == nil {
		return nil, fmt.Errorf("%w: a score function is required", neat.ErrConfiguration)
	}
	if t.config == nil {
		t.config = neat.DefaultConfig()
	}
	if err := t.config.Validate(); err != nil {
		return nil, err
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	operators, err := NewRandomChoice(operatorNames, t.config.Mutation.OperatorWeights)
	if err != nil {
		return nil, err
	}
	t.operators = operators
	t.cmp = neat.Comparator{Minimize: score.ShouldMinimize()}
	t.bestEverScore = t.cmp.WorstScore()
	t.threshold = t.config.SpeciesSet.CompatibilityThreshold
	t.logger = t.baseLogger.WithField("run_id", t.runID)
	t.metrics = NewMetrics(t.registerer)
	t.adapter = &ScoreAdapter{Score: score, Decoder: nn.NewDecoder(t.config)}
	return t, nil
}

// init validates the population and runs the first evaluation.
func (t *Trainer) init(pop *neat.Population) error {
	if len(pop.Genomes) < 2 {
		return fmt.Errorf("%w: population size must be at least 2, got %d", neat.ErrConfiguration, len(pop.Genomes))
	}
	for i, g := range pop.Genomes {
		if g == nil {
			return fmt.Errorf("%w: population entry %d is not a NEAT genome", neat.ErrConfiguration, i)
		}
		if g.InputCount != pop.InputCount || g.OutputCount != pop.OutputCount {
			return fmt.Errorf("%w: genome %d has %d inputs and %d outputs, want %d and %d",
				neat.ErrConfiguration, g.ID, g.InputCount, g.OutputCount, pop.InputCount, pop.OutputCount)
		}
	}
	t.pop = pop

	t.resetAndKill()
	t.sortAndRecord()
	t.speciate()
	t.record()
	return nil
}

// Iteration advances the run by one generation.
func (t *Trainer) Iteration() {
	t.generation++

	next := t.reproduce()
	t.pop.Clear()
	t.pop.AddAll(next)

	t.resetAndKill()
	t.sortAndRecord()
	t.speciate()
	t.record()
}

// Iterations runs n generations.
func (t *Trainer) Iterations(n int) {
	for i := 0; i < n; i++ {
		t.Iteration()
	}
}

// sortAndRecord scores every genome, ranks the population best first and
// updates the best-ever score and network.
func (t *Trainer) sortAndRecord() {
	t.adapter.Logger = t.log()
	for _, g := range t.pop.Genomes {
		g.Score = t.adapter.Evaluate(g)
	}
	t.pop.Sort(t.cmp)

	top := t.pop.Get(0)
	if t.cmp.IsBetterThan(top.Score, t.bestEverScore) {
		t.bestEverScore = top.Score
		t.bestEverNetwork, _ = top.Phenotype.(*nn.Network)
	}
}

// record publishes the state of the generation to the logger and metrics.
func (t *Trainer) record() {
	scores := make([]float64, 0, len(t.pop.Genomes))
	for _, g := range t.pop.Genomes {
		scores = append(scores, g.Score)
	}

	t.metrics.Generation.Set(float64(t.generation))
	t.metrics.BestScore.Set(t.bestEverScore)
	t.metrics.Species.Set(float64(len(t.pop.Species)))
	t.metrics.CompatibilityThreshold.Set(t.threshold)

	t.log().WithFields(logrus.Fields{
		"best_score":  t.pop.Get(0).Score,
		"best_ever":   t.bestEverScore,
		"mean_score":  neat.Mean(scores),
		"stdev_score": neat.Stdev(scores),
		"species":     len(t.pop.Species),
		"threshold":   t.threshold,
	}).Info("Generation complete")
}

func (t *Trainer) log() logrus.FieldLogger {
	return t.logger.WithField("generation", t.generation)
}

// Error returns the best score seen so far.
func (t *Trainer) Error() float64 {
	return t.bestEverScore
}

// Method returns the network of the best genome seen so far.
func (t *Trainer) Method() *nn.Network {
	return t.bestEverNetwork
}

// Generation returns the number of completed iterations.
func (t *Trainer) Generation() int {
	return t.generation
}

// SetGeneration overrides the generation counter.
func (t *Trainer) SetGeneration(generation int) {
	t.generation = generation
}

// CanContinue reports whether training can resume after FinishTraining. It cannot.
func (t *Trainer) CanContinue() bool {
	return false
}

// IsTrainingDone is always false; callers decide when to stop.
func (t *Trainer) IsTrainingDone() bool {
	return false
}

// FinishTraining does nothing; the trainer holds no resources.
func (t *Trainer) FinishTraining() {}

// AddStrategy always fails with ErrUnsupported.
func (t *Trainer) AddStrategy(s Strategy) error {
	return fmt.Errorf("%w: training strategies", ErrUnsupported)
}

// Strategies returns the attached strategies, which is always none.
func (t *Trainer) Strategies() []Strategy {
	return []Strategy{}
}

// ImplementationType reports that the trainer runs one generation per call.
func (t *Trainer) ImplementationType() ImplementationType {
	return Iterative
}

// Population returns the population being trained.
func (t *Trainer) Population() *neat.Population {
	return t.pop
}

// InputCount returns the number of network inputs.
func (t *Trainer) InputCount() int {
	return t.pop.InputCount
}

// OutputCount returns the number of network outputs.
func (t *Trainer) OutputCount() int {
	return t.pop.OutputCount
}

// CompatibilityThreshold returns the current speciation threshold.
func (t *Trainer) CompatibilityThreshold() float64 {
	return t.threshold
}

// RunID identifies the run in log entries.
func (t *Trainer) RunID() string {
	return t.runID
}

// Innovations returns the run's innovation registry.
func (t *Trainer) Innovations() *neat.InnovationList {
	return t.pop.Innovations
}

// Rand returns the run's random source.
func (t *Trainer) Rand() *rand.Rand {
	return t.rng
}

// ChanceAddLink is the probability that the add-link operator adds a link.
func (t *Trainer) ChanceAddLink() float64 {
	return t.config.Mutation.ChanceAddLink
}

// ChanceAddRecurrentLink is the probability that an added link is a self loop.
func (t *Trainer) ChanceAddRecurrentLink() float64 {
	return t.config.Mutation.ChanceAddRecurrentLink
}

var (
	_ IterativeTrainer     = (*Trainer)(nil)
	_ neat.MutationContext = (*Trainer)(nil)
)

package train

import "errors"

// ErrUnsupported is returned by operations this trainer does not provide.
var ErrUnsupported = errors.New("unsupported operation")

// ImplementationType describes how a trainer advances.
type ImplementationType int

const (
	// Iterative trainers advance one generation per Iteration call.
	Iterative ImplementationType = iota
	Background
	OnePass
)

func (t ImplementationType) String() string {
	switch t {
	case Iterative:
		return "iterative"
	case Background:
		return "background"
	case OnePass:
		return "one-pass"
	default:
		return "unknown"
	}
}

// Strategy hooks into a training run before and after each iteration.
type Strategy interface {
	Init(trainer IterativeTrainer)
	PreIteration()
	PostIteration()
}

// IterativeTrainer is the contract shared by trainers driven one iteration
// at a time.
type IterativeTrainer interface {
	Iteration()
	Iterations(n int)
	Error() float64
	Generation() int
	SetGeneration(generation int)
	CanContinue() bool
	IsTrainingDone() bool
	FinishTraining()
	AddStrategy(s Strategy) error
	Strategies() []Strategy
	ImplementationType() ImplementationType
}

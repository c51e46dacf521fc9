package neat

import (
	"fmt"
	"math"
)

// ActivationFunc maps a neuron's weighted input to its output.
type ActivationFunc func(x float64) float64

// ActivationFunctions maps configuration names to activation functions.
var ActivationFunctions = map[string]ActivationFunc{
	"sigmoid":  Sigmoid,
	"tanh":     Tanh,
	"relu":     ReLU,
	"identity": Identity,
	"linear":   Identity,
	"clamped":  Clamped,
	"gaussian": Gaussian,
	"abs":      Absolute,
	"sine":     Sine,
	"step":     Step,
}

// GetActivation retrieves an activation function by name.
func GetActivation(name string) (ActivationFunc, error) {
	if fn, ok := ActivationFunctions[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown activation function: %s", name)
}

// Sigmoid is the steepened logistic curve 1 / (1 + e^(-4.9x)).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-4.9*x))
}

func Tanh(x float64) float64 {
	return math.Tanh(x)
}

func ReLU(x float64) float64 {
	return math.Max(0, x)
}

func Identity(x float64) float64 {
	return x
}

// Clamped limits the output to [-1, 1].
func Clamped(x float64) float64 {
	return clamp(x, -1.0, 1.0)
}

func Gaussian(x float64) float64 {
	return math.Exp(-x * x / 2.0)
}

func Absolute(x float64) float64 {
	return math.Abs(x)
}

func Sine(x float64) float64 {
	return math.Sin(x)
}

// Step outputs 1 for positive input and 0 otherwise.
func Step(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

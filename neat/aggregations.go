package neat

import (
	"fmt"
	"math"
)

// AggregationFunc combines the weighted inputs arriving at a neuron.
type AggregationFunc func(inputs []float64) float64

// AggregationFunctions maps configuration names to aggregation functions.
var AggregationFunctions = map[string]AggregationFunc{
	"sum":     Sum,
	"product": AggregateProduct,
	"min":     MinFloat,
	"max":     MaxFloat,
	"mean":    Mean,
	"average": Mean,
	"median":  Median,
	"maxabs":  AggregateMaxAbs,
}

// GetAggregation retrieves an aggregation function by name.
func GetAggregation(name string) (AggregationFunc, error) {
	if fn, ok := AggregationFunctions[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown aggregation function: %s", name)
}

// AggregateProduct multiplies the inputs. An unconnected neuron yields 0.
func AggregateProduct(inputs []float64) float64 {
	if len(inputs) == 0 {
		return 0.0
	}
	product := 1.0
	for _, v := range inputs {
		product *= v
	}
	return product
}

// AggregateMaxAbs returns the input with the largest magnitude, as a magnitude.
func AggregateMaxAbs(inputs []float64) float64 {
	result := 0.0
	for _, v := range inputs {
		result = math.Max(result, math.Abs(v))
	}
	return result
}

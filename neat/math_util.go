package neat

import (
	"math"
	"sort"
)

func clamp(value, minVal, maxVal float64) float64 {
	return math.Max(minVal, math.Min(value, maxVal))
}

// Mean returns the average of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	return Sum(values) / float64(len(values))
}

// Stdev returns the sample standard deviation, or 0 for fewer than two values.
// Infinite values are skipped.
func Stdev(values []float64) float64 {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) < 2 {
		return 0.0
	}
	mean := Mean(finite)
	variance := 0.0
	for _, v := range finite {
		diff := v - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(finite)-1))
}

func Sum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}

// MaxFloat returns the largest value, or 0 for an empty slice.
func MaxFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	maxVal := values[0]
	for _, v := range values[1:] {
		maxVal = math.Max(maxVal, v)
	}
	return maxVal
}

// MinFloat returns the smallest value, or 0 for an empty slice.
func MinFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	minVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
	}
	return minVal
}

// Median returns the middle value, averaging the two middle values for an
// even count, or 0 for an empty slice.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0.0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2.0
}

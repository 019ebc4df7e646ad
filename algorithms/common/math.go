package common

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions used across algorithms using gonum for robustness

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the sample variance of a slice using gonum
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.Variance(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(Variance(data))
}

// Median calculates the median, averaging the two middle values for
// even-length input
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2.0
	}
	return sorted[mid]
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// MinMaxNormalize normalizes data to the [0, 1] range. A flat signal has no
// range to map, so it is returned unchanged rather than collapsed to zeros.
func MinMaxNormalize(data []float64) []float64 {
	if len(data) == 0 {
		return []float64{}
	}

	min := floats.Min(data)
	max := floats.Max(data)

	normalized := make([]float64, len(data))

	if math.Abs(max-min) < 1e-10 {
		copy(normalized, data)
		return normalized
	}

	for i, val := range data {
		normalized[i] = (val - min) / (max - min)
	}

	return normalized
}

// MedianFilter applies a sliding median with the given kernel size. Windows
// are centered on each sample and padded with zeros beyond the signal edges,
// so edge outputs are pulled toward zero on short kernels. The kernel must be
// odd so every window has an exact center.
func MedianFilter(data []float64, kernelSize int) ([]float64, error) {
	if kernelSize <= 0 {
		return nil, fmt.Errorf("median filter kernel must be positive: %d", kernelSize)
	}
	if kernelSize%2 == 0 {
		return nil, fmt.Errorf("median filter kernel must be odd: %d", kernelSize)
	}

	result := make([]float64, len(data))
	if len(data) == 0 {
		return result, nil
	}

	if kernelSize == 1 {
		copy(result, data)
		return result, nil
	}

	half := kernelSize / 2
	window := make([]float64, kernelSize)

	for i := range data {
		for j := 0; j < kernelSize; j++ {
			idx := i - half + j
			if idx < 0 || idx >= len(data) {
				window[j] = 0.0
			} else {
				window[j] = data[idx]
			}
		}

		sort.Float64s(window)
		result[i] = window[kernelSize/2]
	}

	return result, nil
}

// Correlation calculates Pearson correlation coefficient between two series
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0.0
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0.0
	}

	return r
}

// ClampInt constrains an integer value to a range
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

package windowing

import (
	"fmt"
	"math"
)

// Window is the common surface of the window types in this package
type Window interface {
	Apply(signal []float64) []float64
	GetCoefficients() []float64
	GetSize() int
	GetType() string
}

// New creates a window by name. The symmetric flag selects symmetric
// (size-1 denominator) versus periodic coefficients for the cosine-family
// windows; the shape-only windows ignore it. Parametric windows use fixed
// shape values here (kaiser beta 8.6, tukey alpha 0.5); construct them
// directly for other shapes.
func New(name string, size int, symmetric bool) (Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive: %d", size)
	}

	switch name {
	case "hann":
		return NewHann(size, symmetric), nil
	case "hamming":
		return NewHamming(size, symmetric), nil
	case "blackman":
		return NewBlackman(size, symmetric), nil
	case "blackman_harris":
		return NewBlackmanHarris(size, symmetric), nil
	case "bartlett":
		return NewBartlett(size, symmetric), nil
	case "welch":
		return NewWelch(size), nil
	case "rectangular":
		return NewRectangular(size), nil
	case "kaiser":
		return NewKaiser(size, 8.6, symmetric), nil
	case "tukey":
		return NewTukey(size, 0.5, symmetric), nil
	default:
		return nil, fmt.Errorf("unsupported window type: %q", name)
	}
}

// Supported lists the window names accepted by New
func Supported() []string {
	return []string{
		"hann", "hamming", "blackman", "blackman_harris",
		"bartlett", "welch", "rectangular", "kaiser", "tukey",
	}
}

// UnitSum scales window coefficients so they sum to one, turning the window
// into a weighted-average smoothing kernel. A window whose coefficients sum
// to zero cannot be normalized.
func UnitSum(coefficients []float64) ([]float64, error) {
	sum := 0.0
	for _, c := range coefficients {
		sum += c
	}

	if math.Abs(sum) < 1e-12 {
		return nil, fmt.Errorf("window coefficients sum to zero, cannot normalize")
	}

	normalized := make([]float64, len(coefficients))
	for i, c := range coefficients {
		normalized[i] = c / sum
	}

	return normalized, nil
}

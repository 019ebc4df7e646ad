package filters

import (
	"fmt"

	"github.com/RyanBlaney/vibrato-sonar/algorithms/windowing"
)

// Smoother implements zero-phase weighted-average smoothing by convolving a
// signal with a unit-sum window kernel and keeping the centered same-length
// portion of the full convolution. Samples beyond the signal edges contribute
// zero, so outputs near the edges are pulled toward zero for kernels wider
// than the remaining signal.
//
// The output always has the input's length, including when the signal is
// shorter than the kernel.
type Smoother struct {
	windowType string
	size       int
	kernel     []float64
}

// NewSmoother creates a smoother with the given window type and length.
// The window is generated symmetric and normalized to unit sum.
func NewSmoother(windowType string, size int) (*Smoother, error) {
	window, err := windowing.New(windowType, size, true)
	if err != nil {
		return nil, fmt.Errorf("smoothing window: %w", err)
	}

	kernel, err := windowing.UnitSum(window.GetCoefficients())
	if err != nil {
		return nil, fmt.Errorf("smoothing window %q size %d: %w", windowType, size, err)
	}

	return &Smoother{
		windowType: windowType,
		size:       size,
		kernel:     kernel,
	}, nil
}

// NewHannSmoother creates a Hann-kernel smoother of the given length
func NewHannSmoother(size int) (*Smoother, error) {
	return NewSmoother("hann", size)
}

// Apply smooths the signal, returning a new slice of the same length
func (s *Smoother) Apply(signal []float64) []float64 {
	n := len(signal)
	if n == 0 {
		return []float64{}
	}

	w := len(s.kernel)
	if w == 1 {
		out := make([]float64, n)
		copy(out, signal)
		return out
	}

	full := make([]float64, n+w-1)
	for i := 0; i < n; i++ {
		for j := 0; j < w; j++ {
			full[i+j] += signal[i] * s.kernel[j]
		}
	}

	start := (w - 1) / 2
	return full[start : start+n]
}

// Kernel returns a copy of the unit-sum convolution kernel
func (s *Smoother) Kernel() []float64 {
	kernel := make([]float64, len(s.kernel))
	copy(kernel, s.kernel)
	return kernel
}

// Size returns the kernel length
func (s *Smoother) Size() int {
	return s.size
}

// WindowType returns the window name the kernel was built from
func (s *Smoother) WindowType() string {
	return s.windowType
}

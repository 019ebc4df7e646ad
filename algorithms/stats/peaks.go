package stats

import (
	"math"
	"sort"
)

// PeakParams configures extremum selection
type PeakParams struct {
	// MinDistance is the minimum index spacing between kept peaks.
	// Values below 2 disable the spacing filter.
	MinDistance int `json:"min_distance"`

	// MinProminence is the minimum topographic prominence a peak must
	// rise above its surroundings to be kept. Zero disables the filter.
	MinProminence float64 `json:"min_prominence"`
}

// PeakFinder detects local maxima and filters them by spacing and
// topographic prominence.
//
// References:
//   - Palshikar, G. (2009). "Simple Algorithms for Peak Detection in Time-Series"
//   - Topographic prominence as used in terrain analysis: the drop from a
//     peak to the higher of the two key saddles separating it from taller
//     terrain
//
// Selection runs in three stages: plateau-aware local maxima, spacing
// (taller peaks evict nearby shorter ones), then prominence. The first and
// last samples are never maxima since both neighbors must be lower.
type PeakFinder struct {
	params PeakParams
}

// NewPeakFinder creates a peak finder with the given parameters
func NewPeakFinder(params PeakParams) *PeakFinder {
	return &PeakFinder{params: params}
}

// Find returns the indices of peaks in x, ascending and pairwise at least
// MinDistance apart, each with prominence of at least MinProminence
func (pf *PeakFinder) Find(x []float64) []int {
	if len(x) < 3 {
		return []int{}
	}

	peaks := localMaxima(x)
	if len(peaks) == 0 {
		return peaks
	}

	if pf.params.MinDistance > 1 {
		heights := make([]float64, len(peaks))
		for i, p := range peaks {
			heights[i] = x[p]
		}

		keep := selectByDistance(peaks, heights, pf.params.MinDistance)

		kept := peaks[:0]
		for i, p := range peaks {
			if keep[i] {
				kept = append(kept, p)
			}
		}
		peaks = kept
	}

	if pf.params.MinProminence > 0 {
		proms := pf.Prominences(x, peaks)

		kept := peaks[:0]
		for i, p := range peaks {
			if proms[i] >= pf.params.MinProminence {
				kept = append(kept, p)
			}
		}
		peaks = kept
	}

	return peaks
}

// FindTroughs returns the indices of troughs in x, selected by running Find
// on the negated signal so spacing and prominence apply symmetrically
func (pf *PeakFinder) FindTroughs(x []float64) []int {
	negated := make([]float64, len(x))
	for i, v := range x {
		negated[i] = -v
	}
	return pf.Find(negated)
}

// Prominences computes the topographic prominence of each peak: its height
// above the higher of the two flanking minima, where each flanking minimum
// is the lowest value between the peak and the nearest strictly higher
// sample (or the signal edge)
func (pf *PeakFinder) Prominences(x []float64, peaks []int) []float64 {
	proms := make([]float64, len(peaks))

	for k, p := range peaks {
		leftMin := x[p]
		for i := p - 1; i >= 0 && x[i] <= x[p]; i-- {
			if x[i] < leftMin {
				leftMin = x[i]
			}
		}

		rightMin := x[p]
		for i := p + 1; i < len(x) && x[i] <= x[p]; i++ {
			if x[i] < rightMin {
				rightMin = x[i]
			}
		}

		proms[k] = x[p] - math.Max(leftMin, rightMin)
	}

	return proms
}

// localMaxima finds strict local maxima, resolving a plateau to its middle
// sample. Plateaus touching either edge of the signal do not count.
func localMaxima(x []float64) []int {
	peaks := []int{}

	i := 1
	last := len(x) - 1

	for i < last {
		if x[i-1] < x[i] {
			// Skip over a possible plateau of equal samples
			ahead := i + 1
			for ahead < last && x[ahead] == x[i] {
				ahead++
			}

			if x[ahead] < x[i] {
				peaks = append(peaks, (i+ahead-1)/2)
				i = ahead
				continue
			}
		}
		i++
	}

	return peaks
}

// selectByDistance keeps the tallest peaks under the index-spacing rule.
// Peaks are visited tallest first (ties resolve to the later peak) and each
// survivor evicts not-yet-processed peaks closer than distance on both sides.
func selectByDistance(peaks []int, heights []float64, distance int) []bool {
	n := len(peaks)

	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return heights[order[a]] < heights[order[b]]
	})

	for k := n - 1; k >= 0; k-- {
		j := order[k]
		if !keep[j] {
			continue
		}

		for m := j - 1; m >= 0 && peaks[j]-peaks[m] < distance; m-- {
			keep[m] = false
		}
		for m := j + 1; m < n && peaks[m]-peaks[j] < distance; m++ {
			keep[m] = false
		}
	}

	return keep
}

package stats

import (
	"testing"
)

func intSlicesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFind_SimpleMaxima(t *testing.T) {
	pf := NewPeakFinder(PeakParams{})

	got := pf.Find([]float64{0, 1, 0, 1, 0})
	want := []int{1, 3}
	if !intSlicesEqual(got, want) {
		t.Errorf("Find: got %v, want %v", got, want)
	}
}

func TestFind_PlateauResolvesToMiddle(t *testing.T) {
	pf := NewPeakFinder(PeakParams{})

	got := pf.Find([]float64{0, 1, 1, 1, 0})
	want := []int{2}
	if !intSlicesEqual(got, want) {
		t.Errorf("Find odd plateau: got %v, want %v", got, want)
	}

	// An even plateau resolves to the left of the two middle samples
	got = pf.Find([]float64{0, 1, 1, 0})
	want = []int{1}
	if !intSlicesEqual(got, want) {
		t.Errorf("Find even plateau: got %v, want %v", got, want)
	}
}

func TestFind_EndpointsExcluded(t *testing.T) {
	pf := NewPeakFinder(PeakParams{})

	if got := pf.Find([]float64{5, 1, 5}); len(got) != 0 {
		t.Errorf("Find with tall endpoints: got %v, want none", got)
	}
	if got := pf.Find([]float64{1, 2, 3}); len(got) != 0 {
		t.Errorf("Find on rising ramp: got %v, want none", got)
	}
	// A plateau running into the edge is not a peak
	if got := pf.Find([]float64{0, 2, 2}); len(got) != 0 {
		t.Errorf("Find with edge plateau: got %v, want none", got)
	}
}

func TestFind_NeverNil(t *testing.T) {
	pf := NewPeakFinder(PeakParams{})

	if got := pf.Find(nil); got == nil {
		t.Error("Find of empty input should return an empty slice, not nil")
	}
	if got := pf.Find([]float64{1, 1, 1, 1}); got == nil {
		t.Error("Find of flat input should return an empty slice, not nil")
	}
}

func TestFind_MinDistance(t *testing.T) {
	// Maxima of heights 3, 5, 4 at indices 1, 3, 5
	signal := []float64{0, 3, 0, 5, 0, 4, 0}

	pf := NewPeakFinder(PeakParams{MinDistance: 3})
	got := pf.Find(signal)
	want := []int{3}
	if !intSlicesEqual(got, want) {
		t.Errorf("Find with distance 3: got %v, want %v", got, want)
	}

	pf = NewPeakFinder(PeakParams{MinDistance: 2})
	got = pf.Find(signal)
	want = []int{1, 3, 5}
	if !intSlicesEqual(got, want) {
		t.Errorf("Find with distance 2: got %v, want %v", got, want)
	}
}

func TestFind_MinProminence(t *testing.T) {
	// The peak at index 1 only rises 1 above its right saddle
	signal := []float64{0, 2, 1, 3, 0}

	pf := NewPeakFinder(PeakParams{MinProminence: 2})
	got := pf.Find(signal)
	want := []int{3}
	if !intSlicesEqual(got, want) {
		t.Errorf("Find with prominence 2: got %v, want %v", got, want)
	}
}

func TestProminences_SaddleRule(t *testing.T) {
	pf := NewPeakFinder(PeakParams{})

	signal := []float64{0, 2, 1, 3, 0}
	peaks := pf.Find(signal)
	if !intSlicesEqual(peaks, []int{1, 3}) {
		t.Fatalf("Find: got %v, want [1 3]", peaks)
	}

	proms := pf.Prominences(signal, peaks)
	if proms[0] != 1 {
		t.Errorf("Prominence of lower peak: got %g, want 1", proms[0])
	}
	if proms[1] != 3 {
		t.Errorf("Prominence of higher peak: got %g, want 3", proms[1])
	}
}

func TestFindTroughs_NegatedSymmetry(t *testing.T) {
	pf := NewPeakFinder(PeakParams{})

	got := pf.FindTroughs([]float64{0, -1, 0, -1, 0})
	want := []int{1, 3}
	if !intSlicesEqual(got, want) {
		t.Errorf("FindTroughs: got %v, want %v", got, want)
	}

	// Spacing applies to troughs the same way it applies to peaks
	pf = NewPeakFinder(PeakParams{MinDistance: 3})
	got = pf.FindTroughs([]float64{0, -3, 0, -5, 0, -4, 0})
	want = []int{3}
	if !intSlicesEqual(got, want) {
		t.Errorf("FindTroughs with distance 3: got %v, want %v", got, want)
	}
}

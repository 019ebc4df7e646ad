package common

// Linear interpolation helpers shared by the contour and envelope analyzers.
// Both operate on the frame-index axis: resampling maps positions
// proportionally between grids and gap filling bridges missing frames, with
// linear extrapolation beyond the outermost known frames.

// ResampleLinear maps data onto a new length by linear interpolation over
// normalized positions, so the first and last samples are preserved exactly.
// A single-sample input fills the output with that value.
func ResampleLinear(data []float64, newLength int) []float64 {
	if len(data) == 0 || newLength <= 0 {
		return []float64{}
	}

	result := make([]float64, newLength)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if newLength == 1 {
		result[0] = data[0]
		return result
	}

	if newLength == len(data) {
		copy(result, data)
		return result
	}

	ratio := float64(len(data)-1) / float64(newLength-1)

	for i := range result {
		pos := float64(i) * ratio
		j := int(pos)
		if j >= len(data)-1 {
			result[i] = data[len(data)-1]
			continue
		}
		frac := pos - float64(j)
		result[i] = data[j] + frac*(data[j+1]-data[j])
	}

	return result
}

// InterpolateGaps fills the frames where known is false by linear
// interpolation between the surrounding known frames. Frames outside the
// known span are extrapolated along the outermost known segment, so the
// result is finite everywhere as long as the known values are. With a single
// known frame every output takes that value; with none the input is returned
// as a copy.
func InterpolateGaps(values []float64, known []bool) []float64 {
	result := make([]float64, len(values))
	copy(result, values)

	if len(values) == 0 || len(known) != len(values) {
		return result
	}

	knownIdx := make([]int, 0, len(values))
	for i, ok := range known {
		if ok {
			knownIdx = append(knownIdx, i)
		}
	}

	if len(knownIdx) == 0 {
		return result
	}

	if len(knownIdx) == 1 {
		for i := range result {
			result[i] = values[knownIdx[0]]
		}
		return result
	}

	segment := 0
	for i := range result {
		if known[i] {
			continue
		}

		switch {
		case i < knownIdx[0]:
			// Extrapolate along the first known segment
			left, right := knownIdx[0], knownIdx[1]
			slope := (values[right] - values[left]) / float64(right-left)
			result[i] = values[left] + slope*float64(i-left)

		case i > knownIdx[len(knownIdx)-1]:
			// Extrapolate along the last known segment
			left, right := knownIdx[len(knownIdx)-2], knownIdx[len(knownIdx)-1]
			slope := (values[right] - values[left]) / float64(right-left)
			result[i] = values[right] + slope*float64(i-right)

		default:
			// Advance to the segment that brackets frame i
			for knownIdx[segment+1] < i {
				segment++
			}
			left, right := knownIdx[segment], knownIdx[segment+1]
			frac := float64(i-left) / float64(right-left)
			result[i] = values[left] + frac*(values[right]-values[left])
		}
	}

	return result
}

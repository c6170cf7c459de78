package core

import "math"

// RMS returns the root mean square of a signal slice.
// Intended for short slices or whole envelopes.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	sum := 0.0
	for _, x := range signal {
		sum += x * x
	}

	return math.Sqrt(sum / float64(len(signal)))
}

// RollingRMS produces a per-sample RMS over a sliding window.
// The window shrinks near the end of the signal so every sample gets a
// valid value.
func RollingRMS(signal []float64, windowLen int) []float64 {
	if windowLen <= 0 {
		windowLen = 1
	}

	out := make([]float64, len(signal))
	for i := range signal {
		k := windowLen
		if i+k > len(signal) {
			k = len(signal) - i
		}
		out[i] = RMS(signal[i : i+k])
	}

	return out
}

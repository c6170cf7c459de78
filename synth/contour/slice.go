package contour

import "github.com/cwbudde/algo-synth/synth/core"

// SliceSignal extracts the stretch of sig between normalized positions
// p1 and p2 (0 = start, 1 = end) and resamples it to intoNSamples via
// linear interpolation. A one-sample signal broadcasts its value.
func SliceSignal(sig []float64, p1, p2 float64, intoNSamples int) []float64 {
	if intoNSamples <= 0 || len(sig) == 0 {
		return nil
	}
	if len(sig) == 1 {
		out := make([]float64, intoNSamples)
		for i := range out {
			out[i] = sig[0]
		}
		return out
	}

	p1 = core.Clamp(p1, 0, 1)
	p2 = core.Clamp(p2, 0, 1)

	last := float64(len(sig) - 1)
	startIdx := int(p1 * last)
	endIdx := int(p2 * last)
	if startIdx > len(sig)-1 {
		startIdx = len(sig) - 1
	}
	if endIdx > len(sig)-1 {
		endIdx = len(sig) - 1
	}

	out := make([]float64, intoNSamples)
	for i := range out {
		var t float64
		if intoNSamples > 1 {
			t = float64(i) / float64(intoNSamples-1)
		}
		pos := float64(startIdx)*(1-t) + float64(endIdx)*t

		lo := int(pos)
		hi := lo + 1
		if hi > len(sig)-1 {
			hi = len(sig) - 1
		}

		if lo == hi {
			out[i] = sig[lo]
		} else {
			out[i] = sig[lo] + (sig[hi]-sig[lo])*(pos-float64(lo))
		}
	}

	return out
}

// ApplyContour multiplies signal in place by contour, stretching or
// compressing the contour to the signal's length with linear
// interpolation between contour samples.
func ApplyContour(signal, contour []float64) {
	if len(contour) == 0 {
		return
	}

	l := float64(len(signal))
	l2 := float64(len(contour))
	for i := range signal {
		p := float64(i) / l
		pos := p * l2
		idx := int(pos)
		rem := pos - float64(idx)

		var amp float64
		if rem == 0 || idx+1 >= len(contour) {
			amp = contour[idx]
		} else {
			amp = contour[idx]*(1-rem) + contour[idx+1]*rem
		}
		signal[i] *= amp
	}
}

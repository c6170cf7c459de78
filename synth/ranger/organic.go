package ranger

import (
	"math/rand"

	"github.com/cwbudde/algo-synth/synth/core"
)

// offsetTriangle writes a triangle bump of the given width starting at
// offset samples, rising from minY to maxY with the apex placed at
// midpoint (normalized within the bump). Outside the bump the layer
// stays at minY.
func offsetTriangle(offset, width, minY, maxY, midpoint float64, nSamples int) []float64 {
	rangeY := (maxY - minY) / 2
	out := make([]float64, nSamples)

	for i := range out {
		x := (float64(i) - offset) / width
		switch {
		case x < 0 || x > 1:
			out[i] = minY
		case x <= midpoint:
			out[i] = minY + 2*rangeY*(x/midpoint)
		default:
			out[i] = minY + 2*rangeY*((1-x)/(1-midpoint))
		}
	}

	return out
}

// OrganicAmplitude creates a subtly animated amplitude contour by
// stacking randomly placed triangle layers of increasing width, then
// rescaling the sum into the range spanned by the individual layer
// peaks. minDB and maxDB bound the per-layer attenuation (e.g. -12, -9);
// gain scales the final contour.
//
// This is the "natural variation" alternative to shape-based envelopes:
// no two calls produce the same contour unless rng is seeded
// identically.
func OrganicAmplitude(rng *rand.Rand, nLayers, nSamples int, minDB, maxDB, gain float64) []float64 {
	if nLayers <= 0 || nSamples <= 0 {
		return nil
	}

	minY := core.DBToLinear(minDB)
	maxY := core.DBToLinear(maxDB)

	layers := make([][]float64, 0, nLayers)
	for i := 1; i <= nLayers; i++ {
		width := float64(nSamples) * float64(i) / float64(nLayers)
		offset := rng.Float64()*float64(nSamples) - width/2
		t := rng.Float64() - 0.5
		mid := core.Clamp(4*t*t, 0.05, 0.95)
		layers = append(layers, offsetTriangle(offset, width, minY, maxY, mid, nSamples))
	}

	// Track layer peaks so the summed contour can be rescaled into the
	// band the layers themselves occupy.
	peakMax, peakMin := 0.0, 0.0
	for i, layer := range layers {
		peak := 0.0
		for _, v := range layer {
			if v > peak {
				peak = v
			}
		}
		if i == 0 {
			peakMax, peakMin = peak, peak
			continue
		}
		if peak > peakMax {
			peakMax = peak
		}
		if peak < peakMin {
			peakMin = peak
		}
	}

	out := make([]float64, nSamples)
	for _, layer := range layers {
		for i, v := range layer {
			out[i] += v
		}
	}

	resultMax := 0.0
	for _, v := range out {
		if v > resultMax {
			resultMax = v
		}
	}
	if resultMax == 0 {
		return out
	}

	peakRange := peakMax - peakMin
	for i, v := range out {
		out[i] = gain*(v/resultMax)*peakRange + peakMin
	}

	return out
}

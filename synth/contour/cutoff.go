package contour

import "github.com/cwbudde/algo-synth/synth/core"

// CutoffContour produces a per-sample cutoff frequency trajectory for
// one note, the "wah" lowpass mask. Cutoffs are expressed in register
// units above a resting frequency and exponentiated to Hz, so every
// stage interpolates linearly in log2-frequency space:
//
//	onset   ramps the exponent from 0 up to peak
//	decay   falls from peak to peak*sustain
//	hold    stays at peak*sustain
//	release falls from peak*sustain back to 0
//
// The resting cutoff is freq + 2^stable; peak is clamped into
// [1, registerSpan] so the filter always opens at least one octave and
// never beyond the configured register range.
func CutoffContour(cfg core.RenderConfig, freq float64, nSamples int, levels Levels, odr ODR) []float64 {
	if nSamples <= 0 {
		return nil
	}

	spans := odr.Stages(cfg, nSamples)
	peak := core.Clamp(levels.Peak, 1, cfg.RegisterSpan())
	sustain := levels.Sustain
	stableFreq := freq + mathPower2(levels.Stable)

	out := make([]float64, 0, nSamples)

	for j := 0; j < spans.Onset; j++ {
		p := float64(j) / float64(spans.Onset)
		out = append(out, stableFreq+mathPower2(peak*p))
	}
	for j := 0; j < spans.Decay; j++ {
		p := float64(j) / float64(spans.Decay)
		e := peak * (sustain + (1-p)*(1-sustain))
		out = append(out, stableFreq+mathPower2(e))
	}
	for j := 0; j < spans.Hold; j++ {
		out = append(out, stableFreq+mathPower2(peak*sustain))
	}
	for j := 0; j < spans.Release; j++ {
		p := float64(j) / float64(spans.Release)
		out = append(out, stableFreq+mathPower2((1-p)*peak*sustain))
	}

	return out
}

// Package reverb implements convolution reverb: an exponentially
// decaying white-noise impulse response convolved with the signal via
// FFT, blended with the dry signal by a wet/dry mix.
package reverb

import (
	"fmt"
	"math"
	"math/rand"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-synth/synth/core"
)

// Params configures one reverb pass.
//
//	Mix:  wet/dry balance, 0 = dry only
//	Amp:  impulse amplitude coefficient
//	Dur:  impulse length in seconds
//	Rate: decay rate position in [0, 1], 0 = shortest tail
type Params struct {
	Mix  float64
	Amp  float64
	Dur  float64
	Rate float64
}

// IsPassthrough reports whether the reverb would leave the signal
// untouched.
func (p Params) IsPassthrough() bool {
	return p.Mix == 0 || p.Amp == 0 || p.Dur <= 0
}

// GenImpulse produces an exponentially decaying white-noise impulse
// response of dur seconds. Rate maps linearly into decay exponents
// from -50 (rate 0, shortest) to -5 (rate 1, longest).
func GenImpulse(cfg core.RenderConfig, rng *rand.Rand, amp, rate, dur float64) []float64 {
	nSamples := int(dur * cfg.SampleRate)
	if nSamples <= 0 {
		return nil
	}

	k := -50 + rate*(50-5)
	nf := float64(nSamples)
	out := make([]float64, nSamples)
	for i := range out {
		contour := math.Exp(k * float64(i) / nf)
		noise := 2*rng.Float64() - 1
		out[i] = amp * contour * noise
	}
	return out
}

// Convolve computes the full linear convolution of sig and kernel via
// FFT, returning len(sig)+len(kernel) samples (the final sample is the
// zero tail of the exact convolution, kept so callers can mix against
// impulse-length output).
func Convolve(sig, kernel []float64) ([]float64, error) {
	n := len(sig) + len(kernel)
	if n == 0 {
		return nil, nil
	}

	fftSize := nextPowerOf2(n)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("reverb: fft plan: %w", err)
	}

	sigPadded := make([]complex128, fftSize)
	for i, v := range sig {
		sigPadded[i] = complex(v, 0)
	}
	kernelPadded := make([]complex128, fftSize)
	for i, v := range kernel {
		kernelPadded[i] = complex(v, 0)
	}

	if err := plan.Forward(sigPadded, sigPadded); err != nil {
		return nil, fmt.Errorf("reverb: forward fft: %w", err)
	}
	if err := plan.Forward(kernelPadded, kernelPadded); err != nil {
		return nil, fmt.Errorf("reverb: forward fft: %w", err)
	}

	for i := range sigPadded {
		sigPadded[i] *= kernelPadded[i]
	}

	if err := plan.Inverse(sigPadded, sigPadded); err != nil {
		return nil, fmt.Errorf("reverb: inverse fft: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(sigPadded[i])
	}
	return out, nil
}

// Apply runs the reverb over sig: it generates an impulse response
// from params, convolves, and blends. The output extends past the dry
// signal by the impulse length; the tail carries the wet decay alone.
// A passthrough Params returns a copy of sig.
func Apply(cfg core.RenderConfig, rng *rand.Rand, sig []float64, params Params) ([]float64, error) {
	if params.IsPassthrough() || len(sig) == 0 {
		out := make([]float64, len(sig))
		copy(out, sig)
		return out, nil
	}

	ir := GenImpulse(cfg, rng, params.Amp, params.Rate, params.Dur)
	wet, err := Convolve(sig, ir)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(wet))
	for i := range out {
		if i < len(sig) {
			out[i] = (1-params.Mix)*sig[i] + params.Mix*wet[i]
		} else {
			out[i] = params.Mix * wet[i]
		}
	}
	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

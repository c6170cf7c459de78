package spectrum

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-synth/synth/core"
)

// Identity returns the single-partial spectrum: the fundamental at unit
// amplitude and zero phase.
func Identity() Spectrum {
	return Spectrum{Amps: []float64{1}, Muls: []float64{1}, Phis: []float64{0}}
}

// Octave builds an octave-stack spectrum for the given fundamental: the
// fundamental plus the even integer ratios that fit below Nyquist, with a
// steep 1/(i+1)^3 amplitude rolloff favoring the fundamental.
func Octave(cfg core.RenderConfig, fundamental float64) (Spectrum, error) {
	if fundamental <= 0 {
		return Spectrum{}, fmt.Errorf("spectrum: octave fundamental must be > 0: %v", fundamental)
	}

	n := int(cfg.Nyquist() / fundamental / 2)
	muls := make([]float64, 0, n+1)
	muls = append(muls, 1)
	for k := 1; k <= n; k++ {
		muls = append(muls, float64(2*k))
	}

	amps := make([]float64, len(muls))
	for i := range amps {
		f := float64(i + 1)
		amps[i] = 1 / (f * f * f)
	}

	return Spectrum{Amps: amps, Muls: muls, Phis: make([]float64, len(muls))}, nil
}

// UnderSquare builds an undertone square spectrum: ratios 1/i for odd i
// down to the configured minimum frequency, amplitude 1/i^3, with the
// square-wave odd-harmonic phase alternation.
func UnderSquare(cfg core.RenderConfig, fundamental float64) (Spectrum, error) {
	if fundamental <= 0 {
		return Spectrum{}, fmt.Errorf("spectrum: undertone fundamental must be > 0: %v", fundamental)
	}

	n := int(fundamental / cfg.MinFreq() / 2)
	var amps, muls, phis []float64
	for i := 1; i <= 2*n+1; i += 2 {
		f := float64(i)
		muls = append(muls, 1/f)
		amps = append(amps, 1/(f*f*f))
		phis = append(phis, squarePhase(i))
	}

	return Spectrum{Amps: amps, Muls: muls, Phis: phis}, nil
}

// Square builds the odd-harmonic overtone series of a square wave,
// amplitude 4/(pi*i), up to Nyquist.
func Square(cfg core.RenderConfig, fundamental float64) (Spectrum, error) {
	if fundamental <= 0 {
		return Spectrum{}, fmt.Errorf("spectrum: square fundamental must be > 0: %v", fundamental)
	}

	var amps, muls, phis []float64
	for i := 1; fundamental*float64(i) < cfg.Nyquist(); i += 2 {
		f := float64(i)
		muls = append(muls, f)
		amps = append(amps, 4/(math.Pi*f))
		phis = append(phis, squarePhase(i))
	}

	return Spectrum{Amps: amps, Muls: muls, Phis: phis}, nil
}

// Sawtooth builds the full overtone series of a sawtooth wave, amplitude
// 2/(pi*i) with alternating sign expressed as a 0/pi phase.
func Sawtooth(cfg core.RenderConfig, fundamental float64) (Spectrum, error) {
	if fundamental <= 0 {
		return Spectrum{}, fmt.Errorf("spectrum: sawtooth fundamental must be > 0: %v", fundamental)
	}

	var amps, muls, phis []float64
	for i := 1; fundamental*float64(i) < cfg.Nyquist(); i++ {
		f := float64(i)
		muls = append(muls, f)
		amps = append(amps, 2/(math.Pi*f))
		if i%2 == 0 {
			phis = append(phis, math.Pi)
		} else {
			phis = append(phis, 0)
		}
	}

	return Spectrum{Amps: amps, Muls: muls, Phis: phis}, nil
}

// Triangle builds the odd-harmonic overtone series of a triangle wave,
// amplitude 8/(pi^2*i^2) with every other odd harmonic sign-flipped.
func Triangle(cfg core.RenderConfig, fundamental float64) (Spectrum, error) {
	if fundamental <= 0 {
		return Spectrum{}, fmt.Errorf("spectrum: triangle fundamental must be > 0: %v", fundamental)
	}

	var amps, muls, phis []float64
	for i := 1; fundamental*float64(i) < cfg.Nyquist(); i += 2 {
		f := float64(i)
		muls = append(muls, f)
		amps = append(amps, 8/(math.Pi*math.Pi*f*f))
		if ((i-1)/2)%2 == 1 {
			phis = append(phis, math.Pi)
		} else {
			phis = append(phis, 0)
		}
	}

	return Spectrum{Amps: amps, Muls: muls, Phis: phis}, nil
}

// squarePhase alternates between 0 and pi based on floor((i+1)/2) parity,
// the phase law of the square-wave odd-harmonic expansion.
func squarePhase(i int) float64 {
	if ((i+1)/2)%2 == 0 {
		return math.Pi
	}
	return 0
}

// NoiseColor selects the spectral tilt of a generated noise spectrum.
type NoiseColor int

const (
	// NoiseViolet rises +12 dB per octave (f^2).
	NoiseViolet NoiseColor = iota
	// NoiseBlue rises +3 dB per octave (sqrt f).
	NoiseBlue
	// NoiseEqual is flat.
	NoiseEqual
	// NoisePink falls -3 dB per octave (1/sqrt f).
	NoisePink
	// NoiseRed falls -12 dB per octave (1/f^2).
	NoiseRed
)

// AmpMod returns the color's amplitude weight at relative frequency f.
func (c NoiseColor) AmpMod(f float64) float64 {
	switch c {
	case NoiseViolet:
		return f * f
	case NoiseBlue:
		return math.Sqrt(f)
	case NoisePink:
		return 1 / math.Sqrt(f)
	case NoiseRed:
		return 1 / (f * f)
	default:
		return 1
	}
}

// Noise builds a quasi-continuous noise spectrum from a finite partial
// count. The range [1, maxRatio) is partitioned into octave-wide stages;
// stage i holds 2^(minEntriesExponent+i) partials with uniformly random
// ratio inside the stage octave, random phase, and a shared per-stage
// amplitude set by the noise color.
//
// A maxRatio below 2 produces zero stages and yields an empty, valid
// Spectrum rather than an error.
func Noise(rng *rand.Rand, color NoiseColor, maxRatio float64, minEntriesExponent int) Spectrum {
	if maxRatio < 2 {
		return Spectrum{}
	}
	if minEntriesExponent < 0 {
		minEntriesExponent = 0
	}

	stages := int(math.Log2(maxRatio))
	var amps, muls, phis []float64
	for i := 0; i < stages; i++ {
		base := math.Pow(2, float64(i))
		count := 1 << uint(minEntriesExponent+i)
		amp := color.AmpMod(base)
		for j := 0; j < count; j++ {
			muls = append(muls, base*(1+rng.Float64()))
			phis = append(phis, rng.Float64()*2*math.Pi)
			amps = append(amps, amp)
		}
	}

	return Spectrum{Amps: amps, Muls: muls, Phis: phis}
}

package spectrum

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Spectrum constructors.
var (
	ErrLengthMismatch    = errors.New("spectrum: amplitude, ratio and phase sequences differ in length")
	ErrNonPositiveRatio  = errors.New("spectrum: frequency ratio must be > 0")
	ErrNegativeAmplitude = errors.New("spectrum: amplitude must be >= 0")
)

// Spectrum describes a timbre as parallel partial descriptors.
// Index i across the three slices describes one partial: Amps[i] is its
// amplitude, Muls[i] its frequency ratio relative to a fundamental, and
// Phis[i] its phase in radians. Ordering carries no musical meaning, but
// index alignment does.
type Spectrum struct {
	Amps []float64
	Muls []float64
	Phis []float64
}

// New validates and assembles a Spectrum from parallel slices.
// The slices are used directly, not copied.
func New(amps, muls, phis []float64) (Spectrum, error) {
	if len(amps) != len(muls) || len(muls) != len(phis) {
		return Spectrum{}, fmt.Errorf("%w: %d/%d/%d", ErrLengthMismatch, len(amps), len(muls), len(phis))
	}

	for i, m := range muls {
		if m <= 0 {
			return Spectrum{}, fmt.Errorf("%w: index %d has ratio %v", ErrNonPositiveRatio, i, m)
		}
		if amps[i] < 0 {
			return Spectrum{}, fmt.Errorf("%w: index %d has amplitude %v", ErrNegativeAmplitude, i, amps[i])
		}
	}

	return Spectrum{Amps: amps, Muls: muls, Phis: phis}, nil
}

// Len returns the number of partials.
func (s Spectrum) Len() int {
	return len(s.Amps)
}

// Empty reports whether the spectrum has no partials.
// An empty spectrum is valid and renders as silence.
func (s Spectrum) Empty() bool {
	return len(s.Amps) == 0
}

// Concat appends the partials of other after the partials of s.
// No deduplication takes place; use Merge to collapse equal ratios.
func (s Spectrum) Concat(other Spectrum) Spectrum {
	out := Spectrum{
		Amps: make([]float64, 0, s.Len()+other.Len()),
		Muls: make([]float64, 0, s.Len()+other.Len()),
		Phis: make([]float64, 0, s.Len()+other.Len()),
	}
	out.Amps = append(append(out.Amps, s.Amps...), other.Amps...)
	out.Muls = append(append(out.Muls, s.Muls...), other.Muls...)
	out.Phis = append(append(out.Phis, s.Phis...), other.Phis...)
	return out
}

// Scale multiplies every amplitude by gain and returns a new Spectrum.
func (s Spectrum) Scale(gain float64) Spectrum {
	out := Spectrum{
		Amps: make([]float64, s.Len()),
		Muls: append([]float64(nil), s.Muls...),
		Phis: append([]float64(nil), s.Phis...),
	}
	for i, a := range s.Amps {
		out.Amps[i] = a * gain
	}
	return out
}

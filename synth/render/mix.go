package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// TrimThreshold is the amplitude below which trailing samples count as
// silence for TrimTail.
const TrimThreshold = 0.001

// ErrLengthMismatch is returned by MixBuffers when the input buffers
// differ in length. Use PadAndMix to mix unequal buffers.
var ErrLengthMismatch = errors.New("render: buffers differ in length")

// Normalize scales sig in place so its peak amplitude is at most 1.
// Signals already within [-1, 1] are left untouched.
func Normalize(sig []float64) {
	peak := peakAmplitude(sig)
	if peak > 1 {
		vecmath.ScaleBlock(sig, sig, 1/peak)
	}
}

// NormalizeChannels rescales a set of equal-length channels in place so
// that no single channel clips and their sum stays within [-1, 1]. Both
// passes apply one uniform factor across every channel, preserving the
// balance between them.
func NormalizeChannels(channels [][]float64) {
	if len(channels) == 0 {
		return
	}
	for _, ch := range channels {
		if len(ch) == 0 {
			return
		}
	}

	globalMax := 0.0
	for _, ch := range channels {
		if p := peakAmplitude(ch); p > globalMax {
			globalMax = p
		}
	}
	if globalMax == 0 {
		return
	}
	if globalMax > 1 {
		for _, ch := range channels {
			vecmath.ScaleBlock(ch, ch, 1/globalMax)
		}
	}

	summed := getBuffer(len(channels[0]))
	for _, ch := range channels {
		m := len(ch)
		if m > len(summed) {
			m = len(summed)
		}
		vecmath.AddBlockInPlace(summed[:m], ch[:m])
	}
	factor := peakAmplitude(summed)
	putBuffer(summed)

	if factor > 1 {
		for _, ch := range channels {
			vecmath.ScaleBlock(ch, ch, 1/factor)
		}
	}
}

// MixBuffers sums equal-length buffers into one, normalizing the
// channel set in place beforehand so the sum cannot clip. The mixed
// result is peak-normalized only when it still exceeds unity.
func MixBuffers(buffs [][]float64) ([]float64, error) {
	if len(buffs) == 0 {
		return nil, nil
	}

	n := len(buffs[0])
	for _, b := range buffs {
		if len(b) != n {
			return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, n, len(b))
		}
	}

	NormalizeChannels(buffs)
	mixed := make([]float64, n)
	for _, b := range buffs {
		vecmath.AddBlockInPlace(mixed, b)
	}
	Normalize(mixed)
	return mixed, nil
}

// PadAndMix zero-pads every buffer to the longest length and mixes.
func PadAndMix(buffs [][]float64) []float64 {
	if len(buffs) == 0 {
		return nil
	}

	maxLen := 0
	for _, b := range buffs {
		if len(b) > maxLen {
			maxLen = len(b)
		}
	}
	if maxLen == 0 {
		return nil
	}

	padded := make([][]float64, len(buffs))
	for i, b := range buffs {
		p := make([]float64, maxLen)
		copy(p, b)
		padded[i] = p
	}

	mixed, _ := MixBuffers(padded)
	return mixed
}

// TrimTail truncates sig after the last sample louder than thresh. A
// non-positive thresh falls back to TrimThreshold. An entirely quiet
// signal trims to nothing.
func TrimTail(sig []float64, thresh float64) []float64 {
	if thresh <= 0 {
		thresh = TrimThreshold
	}
	for i := len(sig) - 1; i >= 0; i-- {
		if math.Abs(sig[i]) > thresh {
			return sig[:i+1]
		}
	}
	return sig[:0]
}

// Overlapping adds note into base starting at sample offset cue,
// growing base when the note rings past its end. The (possibly
// reallocated) base is returned.
func Overlapping(base []float64, cue int, note []float64) []float64 {
	if cue < 0 {
		cue = 0
	}
	if need := cue + len(note); need > len(base) {
		grown := make([]float64, need)
		copy(grown, base)
		base = grown
	}
	vecmath.AddBlockInPlace(base[cue:cue+len(note)], note)
	return base
}

// Rescale resamples sig to n samples with linear interpolation.
func Rescale(sig []float64, n int) []float64 {
	if n <= 0 || len(sig) == 0 {
		return nil
	}
	if len(sig) == 1 {
		out := make([]float64, n)
		for i := range out {
			out[i] = sig[0]
		}
		return out
	}

	out := make([]float64, n)
	last := float64(len(sig) - 1)
	for i := range out {
		var t float64
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		pos := t * last
		lo := int(pos)
		hi := lo + 1
		if hi > len(sig)-1 {
			out[i] = sig[lo]
			continue
		}
		out[i] = sig[lo] + (sig[hi]-sig[lo])*(pos-float64(lo))
	}
	return out
}

func peakAmplitude(sig []float64) float64 {
	peak := 0.0
	for _, v := range sig {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

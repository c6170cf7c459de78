package spectrum

import (
	"math"
	"sort"
)

// Merge collapses partials sharing the same frequency ratio into one
// equivalent partial, preserving the net signal at that frequency.
//
// Each partial is treated as a phasor amp*e^(i*phase); a group sharing a
// ratio merges to the vector sum:
//
//	ampOut   = sqrt((sum amp*cos(phase))^2 + (sum amp*sin(phase))^2)
//	phaseOut = atan2(sum amp*sin(phase), sum amp*cos(phase))
//
// Grouping uses exact ratio equality after sorting by ratio; output
// ordering is ascending ratio. A group of one passes through the same
// identity, so singleton partials reproduce exactly (mod 2*pi).
func Merge(s Spectrum) Spectrum {
	n := s.Len()
	if n == 0 {
		return Spectrum{}
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.Muls[idx[a]] < s.Muls[idx[b]]
	})

	var out Spectrum
	start := 0
	for start < n {
		end := start
		for end < n && s.Muls[idx[end]] == s.Muls[idx[start]] {
			end++
		}
		amp, phase := mergeGroup(s, idx[start:end])
		out.Amps = append(out.Amps, amp)
		out.Muls = append(out.Muls, s.Muls[idx[start]])
		out.Phis = append(out.Phis, phase)
		start = end
	}

	return out
}

// mergeGroup vector-sums the partials selected by idx. The caller never
// passes an empty group, which keeps atan2(0, 0) out of reach for the
// degenerate no-input case.
func mergeGroup(s Spectrum, idx []int) (amp, phase float64) {
	var re, im float64
	for _, i := range idx {
		re += s.Amps[i] * math.Cos(s.Phis[i])
		im += s.Amps[i] * math.Sin(s.Phis[i])
	}
	return math.Sqrt(re*re + im*im), math.Atan2(im, re)
}

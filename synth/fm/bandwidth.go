package fm

import (
	"errors"

	"github.com/cwbudde/algo-synth/synth/core"
)

var (
	ErrNonPositiveModIndex = errors.New("fm: modulation index must be greater than zero")
	ErrNonPositiveModFreq  = errors.New("fm: modulation frequency must be greater than zero")
)

// ComputeBandwidth estimates the effective center frequency and total
// spectral width of an operator at time t. Each node contributes
// Carson's-rule width 2*I*f from its effective modulation index, plus
// the recursive contribution of its child modulators. A bare carrier
// with zero index occupies a nominal 1 Hz.
func ComputeBandwidth(cfg core.RenderConfig, op *Operator, offsetFrequency, t float64) (center, bandwidth float64) {
	f := op.Frequency + offsetFrequency
	index := op.effectiveModIndex(t, cfg.SampleRate)

	if len(op.Modulators) == 0 {
		if index > 0 {
			return f, 2 * index * f
		}
		return f, 1
	}

	total := 0.0
	for _, src := range op.Modulators {
		if src.IsFeedback() {
			continue
		}
		_, childBW := ComputeBandwidth(cfg, src.Op, 0, t)
		total += childBW
	}
	return f, total + 2*index*f
}

// RemainingBandwidth reports how much of maxBandwidth (capped at
// Nyquist) is still unclaimed by the operator tree's spectrum. Never
// negative.
func RemainingBandwidth(cfg core.RenderConfig, op *Operator, maxBandwidth, t float64) float64 {
	constrained := maxBandwidth
	if nyquist := cfg.Nyquist(); constrained > nyquist {
		constrained = nyquist
	}

	var consumed func(op *Operator) float64
	consumed = func(op *Operator) float64 {
		total := 2 * op.effectiveModIndex(t, cfg.SampleRate) * op.Frequency
		for _, src := range op.Modulators {
			if !src.IsFeedback() {
				total += consumed(src.Op)
			}
		}
		return total
	}

	remaining := constrained - consumed(op)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingRange checks whether the operator's whole band sits strictly
// inside [minFreq, maxFreq]. When it does, it returns the headroom
// below the lower edge and above the upper edge; ok is false when any
// part of the band falls outside.
func RemainingRange(cfg core.RenderConfig, op *Operator, offsetFrequency, t, minFreq, maxFreq float64) (below, above float64, ok bool) {
	center, bandwidth := ComputeBandwidth(cfg, op, offsetFrequency, t)
	halfBW := bandwidth / 2
	lower := center - halfBW
	upper := center + halfBW

	if lower <= minFreq || upper >= maxFreq {
		return 0, 0, false
	}
	return lower - minFreq, maxFreq - upper, true
}

// ComputeMaxModFreq solves the aliasing bound for a modulator: the
// highest modulation frequency that keeps first-order sidebands of a
// carrier at maxCarrierFreq below Nyquist, given the modulation index.
// Zero when no non-aliasing frequency exists.
func ComputeMaxModFreq(cfg core.RenderConfig, maxCarrierFreq, maxModIndex float64) float64 {
	raw := (cfg.Nyquist() - maxCarrierFreq) / (maxModIndex + 1)
	if raw <= 0 {
		return 0
	}
	return raw
}

// DetermineModFreq picks the highest modulation frequency that fits in
// the remaining bandwidth at the given modulation index, clamped to
// the audible range.
func DetermineModFreq(remainingBandwidth, modIndex float64) (float64, error) {
	if modIndex <= 0 {
		return 0, ErrNonPositiveModIndex
	}
	maxModFreq := remainingBandwidth / (2 * (modIndex + 1))
	return core.Clamp(maxModFreq, 20, 20000), nil
}

// DetermineModIndex picks the highest modulation index that fits in
// the remaining bandwidth at the given modulation frequency. Never
// negative.
func DetermineModIndex(remainingBandwidth, modFreq float64) (float64, error) {
	if modFreq <= 0 {
		return 0, ErrNonPositiveModFreq
	}
	maxModIndex := remainingBandwidth/(2*modFreq) - 1
	if maxModIndex < 0 {
		return 0, nil
	}
	return maxModIndex, nil
}

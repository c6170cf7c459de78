package fm

import (
	"math/rand"

	"github.com/cwbudde/algo-synth/synth/core"
)

// GenerateSerialChain grows an operator's modulator list until the
// spectrum under lowpassFilter (capped at Nyquist) is exhausted. At
// each step it builds candidate modulators, keeps the ones whose own
// bandwidth still fits, and appends one at random. Returns nil when no
// modulator could be added at all.
func GenerateSerialChain(cfg core.RenderConfig, rng *rand.Rand, op *Operator, lowpassFilter float64) *Operator {
	current := op.Clone()
	maxBandwidth := lowpassFilter
	if nyquist := cfg.Nyquist(); maxBandwidth > nyquist {
		maxBandwidth = nyquist
	}

	for {
		remaining := RemainingBandwidth(cfg, current, maxBandwidth, 0)
		if remaining <= 0 {
			break
		}

		var candidates []*Operator
		for _, candidate := range []*Operator{
			extendHarmonicRange(cfg, current, 1.5),
			thickenHarmonicDensity(cfg, current, 2),
			subtleEnhancement(cfg, current),
		} {
			if candidate == nil {
				continue
			}
			if _, bw := ComputeBandwidth(cfg, candidate, 0, 0); bw <= remaining {
				candidates = append(candidates, candidate)
			}
		}
		if len(candidates) == 0 {
			break
		}

		pick := candidates[rng.Intn(len(candidates))]
		current.Modulators = append(current.Modulators, ModulateWith(pick))
	}

	if len(current.Modulators) == 0 {
		return nil
	}
	return current
}

// extendHarmonicRange proposes a modulator that pushes sideband energy
// outward by amount relative to the widest frequency that still fits.
func extendHarmonicRange(cfg core.RenderConfig, op *Operator, amount float64) *Operator {
	remaining := RemainingBandwidth(cfg, op, cfg.Nyquist(), 0)
	base, err := DetermineModFreq(remaining, 1)
	if err != nil {
		return nil
	}
	modFreq := base * amount
	if modFreq <= 20 || modFreq >= cfg.Nyquist() {
		return nil
	}
	return Modulator(modFreq, 1)
}

// thickenHarmonicDensity proposes a low-index modulator near the
// operator's own frequency, filling in spectral gaps rather than
// extending the range.
func thickenHarmonicDensity(cfg core.RenderConfig, op *Operator, densityFactor int) *Operator {
	if densityFactor < 1 {
		return nil
	}
	remaining := RemainingBandwidth(cfg, op, cfg.Nyquist(), 0)
	modFreq, err := DetermineModFreq(remaining/float64(densityFactor), 0.5)
	if err != nil {
		return nil
	}
	if modFreq <= 20 || modFreq >= cfg.Nyquist() {
		return nil
	}
	return Modulator(op.Frequency+modFreq/float64(densityFactor), 0.5)
}

// subtleEnhancement proposes a moderate modulator for gentle spectral
// enrichment.
func subtleEnhancement(cfg core.RenderConfig, op *Operator) *Operator {
	remaining := RemainingBandwidth(cfg, op, cfg.Nyquist(), 0)
	modFreq, err := DetermineModFreq(remaining, 0.8)
	if err != nil {
		return nil
	}
	if modFreq <= 20 || modFreq >= cfg.Nyquist() {
		return nil
	}
	return Modulator(modFreq, 0.8)
}

// Prune removes the deepest modulator from an operator tree, used to
// back a too-wide patch off until it fits under Nyquist. A deep chain
// loses its bottom node; a flat tree loses one modulator outright; an
// operator with no modulators collapses to a plain sine. Repeated
// application therefore always converges to a bare carrier.
func Prune(op *Operator) *Operator {
	if len(op.Modulators) == 0 {
		return Carrier(op.Frequency)
	}

	maxDepth := -1
	deepest := -1
	for i, src := range op.Modulators {
		if src.IsFeedback() {
			continue
		}
		if d := src.Op.Depth(); d > maxDepth {
			maxDepth = d
			deepest = i
		}
	}
	if deepest < 0 {
		return op
	}

	out := op.Clone()
	if maxDepth == 0 {
		out.Modulators = append(out.Modulators[:deepest], out.Modulators[deepest+1:]...)
		return out
	}
	out.Modulators[deepest] = ModulateWith(Prune(out.Modulators[deepest].Op))
	return out
}

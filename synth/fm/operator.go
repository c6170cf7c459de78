package fm

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/synth/core"
)

// ErrNonFinite reports that an operator tree produced NaN or Inf. The
// render is aborted rather than clamped so a malformed patch cannot
// silently leak garbage into a mix.
var ErrNonFinite = fmt.Errorf("fm: operator produced a non-finite sample")

// ModulationSource feeds one operator's phase. It is either a nested
// child operator or a self-feedback tap carrying a fixed gain. A
// feedback tap reads the previous sample of its owner, never the
// current one, so the graph stays acyclic per sample.
type ModulationSource struct {
	Op       *Operator
	Feedback float64
}

// ModulateWith wraps a child operator as a modulation source.
func ModulateWith(op *Operator) ModulationSource {
	return ModulationSource{Op: op}
}

// FeedbackSource creates a self-feedback tap with the given gain.
func FeedbackSource(gain float64) ModulationSource {
	return ModulationSource{Feedback: gain}
}

// IsFeedback reports whether the source is a feedback tap.
func (m ModulationSource) IsFeedback() bool { return m.Op == nil }

// Operator is one node in an FM synthesis tree: a carrier at the root,
// modulators below it. Each operator carries envelope pairs for its
// modulation index, frequency, and output gain; the effective value of
// each concern is the product of its multiplicative and bias envelopes.
type Operator struct {
	Frequency       float64
	ModulationIndex float64
	Modulators      []ModulationSource

	ModIndexEnvMul Envelope
	ModIndexEnvSum Envelope
	ModFreqEnvMul  Envelope
	ModFreqEnvSum  Envelope
	ModGainEnvMul  Envelope
	ModGainEnvSum  Envelope
}

// Carrier constructs a root operator with no modulators and no
// modulation index.
func Carrier(frequency float64) *Operator {
	return &Operator{
		Frequency:      frequency,
		ModIndexEnvMul: UnitMul(),
		ModIndexEnvSum: EmptySum(),
		ModFreqEnvMul:  UnitMul(),
		ModFreqEnvSum:  EmptySum(),
		ModGainEnvMul:  UnitMul(),
		ModGainEnvSum:  UnitSum(),
	}
}

// Modulator constructs a child operator with the given frequency and
// modulation index.
func Modulator(frequency, modulationIndex float64) *Operator {
	return &Operator{
		Frequency:       frequency,
		ModulationIndex: modulationIndex,
		ModIndexEnvMul:  UnitMul(),
		ModIndexEnvSum:  UnitSum(),
		ModFreqEnvMul:   UnitMul(),
		ModFreqEnvSum:   EmptySum(),
		ModGainEnvMul:   UnitMul(),
		ModGainEnvSum:   UnitSum(),
	}
}

// effectiveModIndex is the operator's modulation index at time t:
// the static index scaled by the product of its envelope pair.
func (o *Operator) effectiveModIndex(t, sampleRate float64) float64 {
	return o.ModulationIndex * o.ModIndexEnvMul.At(t, sampleRate) * o.ModIndexEnvSum.At(t, sampleRate)
}

// countFeedbacks walks the tree and totals the feedback taps, which
// determines the size of the shared previous-output state slice.
func countFeedbacks(sources []ModulationSource) int {
	n := 0
	for _, src := range sources {
		if src.IsFeedback() {
			n++
		} else {
			n += countFeedbacks(src.Op.Modulators)
		}
	}
	return n
}

// eval computes one output sample at time t. fbStates holds the
// previous output of every feedback tap in the subtree, laid out in
// depth-first order; each tap owns one slot.
func (o *Operator) eval(t, sampleRate float64, fbStates []float64) float64 {
	effFreq := o.Frequency*o.ModFreqEnvMul.At(t, sampleRate) + o.ModFreqEnvSum.At(t, sampleRate)
	angular := 2 * math.Pi * effFreq

	fbOffset := 0
	phaseOffset := 0.0
	for _, src := range o.Modulators {
		if src.IsFeedback() {
			prev := fbStates[fbOffset]
			cur := math.Sin(angular*t + prev)
			phaseOffset += src.Feedback * cur * o.effectiveModIndex(t, sampleRate)
			fbStates[fbOffset] = cur
			fbOffset++
			continue
		}

		child := src.Op
		sub := fbStates[fbOffset:]
		fbOffset += countFeedbacks(child.Modulators)
		phaseOffset += child.eval(t, sampleRate, sub) * child.effectiveModIndex(t, sampleRate)
	}

	gain := o.ModGainEnvMul.At(t, sampleRate) * o.ModGainEnvSum.At(t, sampleRate)
	return math.Sin(angular*t+phaseOffset) * gain
}

// RenderNote renders nCycles of the operator tree to a sample buffer.
// Feedback state starts at zero for every tap. A non-finite sample
// aborts the render with ErrNonFinite.
func (o *Operator) RenderNote(cfg core.RenderConfig, nCycles float64) ([]float64, error) {
	nSamples := cfg.SamplesOfCycles(nCycles)
	if nSamples <= 0 {
		return nil, nil
	}

	fbStates := make([]float64, countFeedbacks(o.Modulators))
	signal := make([]float64, nSamples)
	for i := range signal {
		t := float64(i) / cfg.SampleRate
		y := o.eval(t, cfg.SampleRate, fbStates)
		if !core.IsFinite(y) {
			return nil, fmt.Errorf("%w: sample %d of %d", ErrNonFinite, i, nSamples)
		}
		signal[i] = y
	}
	return signal, nil
}

// RenderOperators renders several trees over the same span and sums
// them into one buffer. Any non-finite tree fails the whole render.
func RenderOperators(cfg core.RenderConfig, operators []*Operator, nCycles float64) ([]float64, error) {
	nSamples := cfg.SamplesOfCycles(nCycles)
	mixed := make([]float64, nSamples)
	for i, op := range operators {
		sig, err := op.RenderNote(cfg, nCycles)
		if err != nil {
			return nil, fmt.Errorf("operator %d: %w", i, err)
		}
		for j, v := range sig {
			mixed[j] += v
		}
	}
	return mixed, nil
}

// Depth is the length of the deepest modulation chain below the
// operator. A leaf has depth zero.
func (o *Operator) Depth() int {
	max := 0
	for _, src := range o.Modulators {
		if src.IsFeedback() {
			continue
		}
		if d := src.Op.Depth() + 1; d > max {
			max = d
		}
	}
	return max
}

// Clone deep-copies the operator tree. Envelopes are value types and
// share their sample buffers, which render never mutates.
func (o *Operator) Clone() *Operator {
	out := *o
	out.Modulators = make([]ModulationSource, len(o.Modulators))
	for i, src := range o.Modulators {
		if src.IsFeedback() {
			out.Modulators[i] = src
		} else {
			out.Modulators[i] = ModulateWith(src.Op.Clone())
		}
	}
	return &out
}

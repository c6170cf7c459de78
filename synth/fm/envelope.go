package fm

// envelopeKind selects between the two envelope representations.
type envelopeKind int

const (
	envParametric envelopeKind = iota
	envSampled
)

// Envelope shapes a modulation index, frequency offset, or gain over the
// life of one note. It is either parametric (an ADSR curve in seconds)
// or sample-based (a precomputed buffer indexed by time).
type Envelope struct {
	kind envelopeKind

	// parametric fields, durations in seconds
	attack  float64
	decay   float64
	hold    float64
	release float64
	min     float64
	max     float64
	sustain float64

	samples []float64
}

// ParametricEnvelope builds an ADSR envelope: ramp min to max over
// attack, fall to sustain over decay, hold at sustain, ramp back to min
// over release, then stay at min.
func ParametricEnvelope(attack, decay, hold, release, min, max, sustain float64) Envelope {
	return Envelope{
		kind:    envParametric,
		attack:  attack,
		decay:   decay,
		hold:    hold,
		release: release,
		min:     min,
		max:     max,
		sustain: sustain,
	}
}

// ConstantEnvelope holds v for the entire note.
func ConstantEnvelope(v float64) Envelope {
	return Envelope{kind: envParametric, min: v, max: v, sustain: v}
}

// UnitMul is the identity for multiplicative modulation.
func UnitMul() Envelope { return ConstantEnvelope(1) }

// UnitSum is the identity level for the bias component of a modulation
// index product.
func UnitSum() Envelope { return ConstantEnvelope(1) }

// EmptySum silences the bias component entirely.
func EmptySum() Envelope { return ConstantEnvelope(0) }

// SampleEnvelope wraps a precomputed buffer. Indexing past the end
// yields zero, so a short buffer doubles as a hard gate.
func SampleEnvelope(samples []float64) Envelope {
	return Envelope{kind: envSampled, samples: samples}
}

// At evaluates the envelope at time t seconds. Sample-based envelopes
// convert t to an index via sampleRate.
func (e Envelope) At(t, sampleRate float64) float64 {
	switch e.kind {
	case envSampled:
		if t < 0 {
			return 0
		}
		idx := int(t * sampleRate)
		if idx >= len(e.samples) {
			return 0
		}
		return e.samples[idx]
	default:
		switch {
		case t < e.attack:
			progress := t / e.attack
			return e.min + progress*(e.max-e.min)
		case t < e.attack+e.decay:
			progress := (t - e.attack) / e.decay
			return e.max - progress*(e.max-e.sustain)
		case t < e.attack+e.decay+e.hold:
			return e.sustain
		case t < e.attack+e.decay+e.hold+e.release:
			progress := (t - (e.attack + e.decay + e.hold)) / e.release
			return e.sustain - progress*(e.sustain-e.min)
		default:
			return e.min
		}
	}
}

// Scale returns a copy of the envelope with every level multiplied by
// gain. Stage durations are unchanged.
func (e Envelope) Scale(gain float64) Envelope {
	out := e
	switch e.kind {
	case envSampled:
		out.samples = make([]float64, len(e.samples))
		for i, v := range e.samples {
			out.samples[i] = v * gain
		}
	default:
		out.min *= gain
		out.max *= gain
		out.sustain *= gain
	}
	return out
}

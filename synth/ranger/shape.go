package ranger

import (
	"math"

	"github.com/cwbudde/algo-synth/synth/core"
)

// Shape names one modulation contour. The set is closed: callers pick a
// shape by value and pair it with a Knob, there are no caller-supplied
// function tables.
type Shape int

const (
	// ShapeRolloff decays like 1/(k*x*sqrt(x)), squashed into [0,1].
	ShapeRolloff Shape = iota
	// ShapeSteep decays like sqrt(k)/x^2, a harder variant of Rolloff.
	ShapeSteep
	// ShapeLogistic is a logistic-curve decay responding to k.
	ShapeLogistic
	// ShapeFadeIn ramps from silence over a knob-selected cycle width
	// between 4 and 16 cycles.
	ShapeFadeIn
	// ShapeFadeOut ramps to silence over the final knob-selected cycle
	// width.
	ShapeFadeOut
	// ShapePluck is an exponential decay whose rate rises with the
	// partial index.
	ShapePluck
	// ShapeBurp is a fast attack-decay bump peaking early in the note.
	ShapeBurp
	// ShapeBreath is a shallow slow wobble around full level.
	ShapeBreath
	// ShapeOscSine is a full-depth sine tremolo.
	ShapeOscSine
	// ShapeOscTriangle is a full-depth triangle tremolo.
	ShapeOscTriangle
	// ShapeImpulse is a narrow spike at the note onset.
	ShapeImpulse
	// ShapePeak emphasizes partials near a knob-selected register.
	ShapePeak
	// ShapeDetune produces a frequency-ratio multiplier near 1
	// (documented range about [0.98, 1.02]); frequency axis only.
	ShapeDetune
	// ShapeVibrato produces a phase offset in radians, bounded by half
	// the knob depth; phase axis only.
	ShapeVibrato
)

// AmplitudeShapes lists every shape whose output honors the amplitude
// contract: values in [0, 1], never identically 0 or 1 over the domain.
var AmplitudeShapes = []Shape{
	ShapeRolloff, ShapeSteep, ShapeLogistic,
	ShapeFadeIn, ShapeFadeOut,
	ShapePluck, ShapeBurp, ShapeBreath,
	ShapeOscSine, ShapeOscTriangle,
	ShapeImpulse, ShapePeak,
}

// Ranger pairs a Shape with the Knob steering it. Rangers are pure
// values: evaluation holds no state and allocates nothing beyond the
// output.
type Ranger struct {
	Shape Shape
	Knob  Knob
}

// conform squashes an unbounded positive contour into [0, 1] with a
// logistic curve, preserving monotonicity of the input.
func conform(y float64) float64 {
	z := y - 0.5
	return 1 / (1 + math.Exp(3*(1.5-z)))
}

// Value evaluates the ranger pointwise. k is the partial index (1-based),
// x the normalized position in [0, 1], and d the note duration in cycles.
// x is clamped to [0, 1] and knob fields to their documented domain at
// entry; out-of-range inputs never panic.
func (r Ranger) Value(k int, x, d float64) float64 {
	if k < 1 {
		k = 1
	}
	x = core.Clamp(x, 0, 1)
	if d <= 0 {
		d = 1
	}
	kf := float64(k)
	a := core.Clamp(r.Knob.A, 0, 1)
	b := core.Clamp(r.Knob.B, 0, 1)
	c := core.Clamp(r.Knob.C, 0, 1)

	switch r.Shape {
	case ShapeRolloff:
		if x == 0 {
			return 1
		}
		return conform(1 / (kf * x * math.Sqrt(x)))

	case ShapeSteep:
		if x == 0 {
			return 1
		}
		return conform(0.1 * math.Sqrt(kf) / (x * x))

	case ShapeLogistic:
		p := -0.75 * (1 + x*math.Log10(0.5*kf))
		return conform(2/(1-math.Exp(p)) - 1)

	case ShapeFadeIn:
		width := 4 + 12*a
		pos := x * d
		if pos >= width {
			return 1
		}
		return pos / width

	case ShapeFadeOut:
		width := 4 + 12*a
		remain := (1 - x) * d
		if remain >= width {
			return 1
		}
		return remain / width

	case ShapePluck:
		rate := (1 + 6*a) * (1 + math.Sqrt(kf)/4)
		return math.Exp(-rate * x)

	case ShapeBurp:
		s := 2 + 10*a
		t := x * s
		return math.Min(1, t*math.Exp(1-t))

	case ShapeBreath:
		depth := 0.5 * a
		rate := 0.25 + 2*b
		return 1 - depth*(0.5+0.5*math.Sin(2*math.Pi*rate*x*d+2*math.Pi*c))

	case ShapeOscSine:
		rate := 0.5 + 15.5*b
		osc := 0.5 + 0.5*math.Sin(2*math.Pi*rate*x*d+2*math.Pi*c)
		return 1 - a + a*osc

	case ShapeOscTriangle:
		rate := 0.5 + 15.5*b
		phase := math.Mod(rate*x*d+c, 1)
		var osc float64
		if phase < 0.5 {
			osc = 2 * phase
		} else {
			osc = 2 * (1 - phase)
		}
		return 1 - a + a*osc

	case ShapeImpulse:
		s := 4 + 60*a
		t := x * d * s
		return math.Exp(-t * t)

	case ShapePeak:
		center := 1 + 4*a
		sigma := 0.5 + b
		dk := math.Log2(kf) - center
		// mild downward slope keeps the contour responsive to x even
		// for partials sitting exactly on the emphasized register
		return math.Exp(-dk*dk/(2*sigma*sigma)) * (1 - 0.1*x)

	case ShapeDetune:
		depth := 0.02 * a
		rate := 0.25 + 4*b
		return 1 + depth*math.Sin(2*math.Pi*rate*x*d+2*math.Pi*c)

	case ShapeVibrato:
		rate := 1 + 7*b
		return 0.5 * a * math.Sin(2*math.Pi*rate*x*d+2*math.Pi*c)

	default:
		return 1
	}
}

// Render evaluates the ranger once per sample across a note spanning
// nCycles at the configured playback rate. Position follows the
// (i+1)/n convention so the first sample sits just inside the domain.
func (r Ranger) Render(cfg core.RenderConfig, nCycles float64, k int) []float64 {
	n := cfg.SamplesOfCycles(nCycles)
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	nf := float64(n)
	for i := range out {
		out[i] = r.Value(k, float64(i+1)/nf, nCycles)
	}
	return out
}

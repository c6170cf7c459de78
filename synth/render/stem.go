package render

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/synth/contour"
	"github.com/cwbudde/algo-synth/synth/core"
	"github.com/cwbudde/algo-synth/synth/delayfx"
	"github.com/cwbudde/algo-synth/synth/fm"
	"github.com/cwbudde/algo-synth/synth/ranger"
	"github.com/cwbudde/algo-synth/synth/reverb"
	"github.com/cwbudde/algo-synth/synth/spectrum"
)

const (
	// dbPerOctave is the bandpass rolloff slope applied per partial.
	dbPerOctave = 48.0
	// filterOctaves caps the rolloff distance in octaves.
	filterOctaves = 1.0
	// headroomDB is the gain reserve applied to every dry sample so
	// stems can be summed before the mixer normalizes.
	headroomDB = -6.0
)

// Note is one melody event: a duration in cycles, a frequency ratio
// against the stem's root frequency, and a velocity. A negative
// duration marks a rest spanning the absolute cycle count; a
// non-positive ratio or a velocity at or below the gate threshold also
// rests.
type Note struct {
	Dur   core.Ratio
	Ratio float64
	Vel   float64
}

// Cycles returns the note's span in cycles, always non-negative.
func (n Note) Cycles() float64 {
	return math.Abs(n.Dur.Cycles())
}

// Melody is an ordered note sequence for one stem.
type Melody []Note

// TotalCycles sums the spans of every note, rests included.
func (m Melody) TotalCycles() float64 {
	total := 0.0
	for _, n := range m {
		total += n.Cycles()
	}
	return total
}

// Expr holds the stem-scoped expression contours. The amplitude
// contour spans the whole melody and is sliced by note position; the
// frequency and phase contours span each note. Empty contours default
// to unity gain, unity ratio, and zero phase.
type Expr struct {
	Amp   []float64
	Freq  []float64
	Phase []float64
}

// Thresh bundles the per-sample gate and clip levels. The zero value
// gates nothing and clips at unity.
type Thresh struct {
	Gate float64
	Clip float64
}

func (t Thresh) clip() float64 {
	if t.Clip <= 0 {
		return 1
	}
	return t.Clip
}

// Stem is one renderable voice: a timbre (additive Spectrum, or an FM
// Operator tree when set), expression and bandpass contours, knob
// modulations, and its effect chain. Rendering walks a melody against
// a root frequency and produces one mono buffer.
type Stem struct {
	Spectrum spectrum.Spectrum
	Operator *fm.Operator

	Expr     Expr
	Highpass []float64
	Lowpass  []float64
	Mods     ranger.KnobMods

	Delays  []delayfx.Params
	Reverbs []reverb.Params
	Thresh  Thresh
}

// tail is the longest delay ring-out in samples.
func (s *Stem) tail(cfg core.RenderConfig) int {
	max := 0
	for _, dp := range s.Delays {
		if t := dp.TailLength(cfg); t > max {
			max = t
		}
	}
	return max
}

// Render walks the melody in order and produces the stem's buffer.
// Each note renders into its own scratch buffer (note span plus delay
// tail), runs the per-note reverbs, is trimmed of trailing silence,
// and lands at the cumulative cue offset so ring-outs overlap the next
// note. Notes must render in sequence: every onset depends on the
// summed durations before it.
func (s *Stem) Render(cfg core.RenderConfig, rng *rand.Rand, melody Melody, rootFreq float64) ([]float64, error) {
	lenCycles := melody.TotalCycles()
	if lenCycles <= 0 {
		return nil, nil
	}

	var out []float64
	cue := 0
	pos := 0.0
	for i, note := range melody {
		span := note.Cycles()
		nSamples := cfg.SamplesOfCycles(span)
		if nSamples <= 0 {
			pos += span
			continue
		}

		p0 := pos / lenCycles
		p1 := (pos + span) / lenCycles

		var sig []float64
		var err error
		switch {
		case note.Dur.Cycles() < 0 || note.Ratio <= 0 || note.Vel <= s.Thresh.Gate:
			sig = getBuffer(nSamples + s.tail(cfg))
		case s.Operator != nil:
			sig, err = s.renderOperatorNote(cfg, span, note.Ratio*rootFreq, note.Vel, p0, p1)
		default:
			sig = s.renderNote(cfg, span, note.Ratio*rootFreq, note.Vel, p0, p1)
		}
		if err != nil {
			return nil, fmt.Errorf("render: note %d: %w", i, err)
		}

		for _, rv := range s.Reverbs {
			wet, err := reverb.Apply(cfg, rng, sig, rv)
			if err != nil {
				return nil, fmt.Errorf("render: note %d: %w", i, err)
			}
			putBuffer(sig)
			sig = wet
		}

		sig = TrimTail(sig, TrimThreshold)
		out = Overlapping(out, cue, sig)
		putBuffer(sig)

		cue += nSamples
		pos += span
	}
	return out, nil
}

// renderNote renders one additive note: for every sample and every
// partial, the amplitude folds velocity, the sliced expression
// contour, the amplitude knobs and the bandpass gain; the frequency
// folds the expression ratio and the frequency knobs; the phase adds
// the expression offset and the phase knobs. Delay replicas write at
// their causal offsets with clipping and gating; the dry sample takes
// the headroom factor.
func (s *Stem) renderNote(cfg core.RenderConfig, nCycles, freq, vel float64, p0, p1 float64) []float64 {
	n := cfg.SamplesOfCycles(nCycles)
	sig := getBuffer(n + s.tail(cfg))

	hp := sliceOr(s.Highpass, p0, p1, n, cfg.MinFreq())
	lp := sliceOr(s.Lowpass, p0, p1, n, cfg.Nyquist())
	ampEnv := sliceOr(s.Expr.Amp, p0, p1, n, 1)
	freqEnv := sliceOr(s.Expr.Freq, 0, 1, n, 1)
	phaseEnv := sliceOr(s.Expr.Phase, 0, 1, n, 0)

	headroom := core.DBToLinear(headroomDB)
	gate := s.Thresh.Gate
	nyquist := cfg.Nyquist()
	minFreq := cfg.MinFreq()
	nf := float64(n)

	for j := 0; j < n; j++ {
		t := float64(j) / cfg.SampleRate
		x := float64(j+1) / nf

		v := 0.0
		for i := range s.Spectrum.Amps {
			k := i + 1

			a0 := ampEnv[j] * s.Spectrum.Amps[i]
			if a0 < gate {
				continue
			}
			amp := vel * a0 * s.Mods.AmpAt(k, x, nCycles)
			if amp < gate {
				continue
			}

			f := freqEnv[j] * s.Spectrum.Muls[i] * freq * s.Mods.FreqAt(k, x, nCycles)
			if f > nyquist || f < minFreq {
				continue
			}
			amp *= contour.ApplyFilter(f, hp[j], lp[j], dbPerOctave, filterOctaves)

			phase := s.Spectrum.Phis[i] + phaseEnv[j] + 2*math.Pi*f*t + s.Mods.PhaseAt(k, x, nCycles)
			v += amp * math.Sin(phase)
		}

		s.writeReplicas(cfg, sig, j, v)
		sig[j] *= headroom
	}
	return sig
}

// renderOperatorNote renders one note through the FM tree, transposing
// the whole tree so the root carrier lands on the note's frequency.
// The expression amplitude contour and velocity scale the raw signal
// before the delay replicas are written.
func (s *Stem) renderOperatorNote(cfg core.RenderConfig, nCycles, freq, vel float64, p0, p1 float64) ([]float64, error) {
	op := s.Operator
	if freq > 0 && op.Frequency > 0 && freq != op.Frequency {
		op = op.Clone()
		transpose(op, freq/s.Operator.Frequency)
	}

	raw, err := op.RenderNote(cfg, nCycles)
	if err != nil {
		return nil, err
	}

	n := len(raw)
	ampEnv := sliceOr(s.Expr.Amp, p0, p1, n, 1)
	vecmath.MulBlockInPlace(raw, ampEnv)
	vecmath.ScaleBlock(raw, raw, vel)

	sig := getBuffer(n + s.tail(cfg))
	headroom := core.DBToLinear(headroomDB)
	for j, v := range raw {
		s.writeReplicas(cfg, sig, j, v)
		sig[j] *= headroom
	}
	return sig, nil
}

// writeReplicas adds one source sample and its delay echoes into sig.
// Every write clips to the clip threshold and drops below the gate
// threshold; echoes land at their replica offsets with causal gains.
func (s *Stem) writeReplicas(cfg core.RenderConfig, sig []float64, j int, v float64) {
	clip := s.Thresh.clip()
	gate := s.Thresh.Gate

	sig[j] += clipGate(v, clip, gate)

	for _, dp := range s.Delays {
		if dp.IsPassthrough() {
			continue
		}
		spe := dp.SamplesPerEcho(cfg)
		for r := 1; r <= dp.NEchoes; r++ {
			g := dp.EchoGain(cfg, j, r)
			if g < gate || g == 0 {
				continue
			}
			idx := j + spe*r
			if idx >= len(sig) {
				continue
			}
			sig[idx] += clipGate(g*v, clip, gate)
		}
	}
}

// clipGate limits y to ±clip and zeroes it below the gate.
func clipGate(y, clip, gate float64) float64 {
	switch a := math.Abs(y); {
	case a > clip:
		return math.Copysign(clip, y)
	case a >= gate:
		return y
	default:
		return 0
	}
}

// transpose scales every operator frequency in the tree by factor.
func transpose(op *fm.Operator, factor float64) {
	op.Frequency *= factor
	for _, src := range op.Modulators {
		if !src.IsFeedback() {
			transpose(src.Op, factor)
		}
	}
}

// sliceOr slices sig between normalized positions p1 and p2 into n
// samples, or broadcasts the fallback when the contour is empty.
func sliceOr(sig []float64, p1, p2 float64, n int, fallback float64) []float64 {
	if len(sig) == 0 {
		out := make([]float64, n)
		if fallback != 0 {
			for i := range out {
				out[i] = fallback
			}
		}
		return out
	}
	return contour.SliceSignal(sig, p1, p2, n)
}

package contour

import (
	"math/rand"

	"github.com/cwbudde/algo-synth/synth/core"
	"github.com/cwbudde/algo-synth/synth/ranger"
)

// Levels are the scalar filter levels applied in-context: the resting
// cutoff register, the peak opening, and the sustained fraction of peak.
type Levels struct {
	// Stable is the resting register offset above the fundamental.
	Stable float64
	// Peak is the register opening at the top of the onset, in octaves.
	Peak float64
	// Sustain is the held level as a fraction of Peak.
	Sustain float64
}

// NewLevels bundles the three related scalars.
func NewLevels(stable, peak, sustain float64) Levels {
	return Levels{Stable: stable, Peak: peak, Sustain: sustain}
}

// ODR holds absolute stage times in milliseconds. The hold stage has no
// entry here: it is whatever remains of the note after the three timed
// stages.
type ODR struct {
	Onset   float64
	Decay   float64
	Release float64
}

// TotalSamples returns the sample count the three timed stages need at
// the configured playback rate.
func (o ODR) TotalSamples(cfg core.RenderConfig) int {
	return cfg.SamplesOfMilliseconds(o.Onset) +
		cfg.SamplesOfMilliseconds(o.Decay) +
		cfg.SamplesOfMilliseconds(o.Release)
}

// FitInSamples returns this ODR, or a proportionally scaled copy when
// the timed stages would overflow the requested duration. Scaling never
// truncates a stage to zero share; the envelope always fits completely.
func (o ODR) FitInSamples(cfg core.RenderConfig, nSeconds float64) ODR {
	curr := o.TotalSamples(cfg)
	requested := cfg.SamplesOfDur(nSeconds)

	if curr > requested {
		scale := float64(requested) / float64(curr)
		return ODR{
			Onset:   o.Onset * scale,
			Decay:   o.Decay * scale,
			Release: o.Release * scale,
		}
	}
	return o
}

// StageSpans are the four derived stage lengths for one note. They sum
// exactly to the note's sample count.
type StageSpans struct {
	Onset   int
	Decay   int
	Hold    int
	Release int
}

// Total returns the summed span length.
func (s StageSpans) Total() int {
	return s.Onset + s.Decay + s.Hold + s.Release
}

// Stages derives the four stage lengths for a note of nSamples. When
// the timed stages exceed the note, all three scale down proportionally
// so they fit exactly; hold is the remainder and is never negative.
func (o ODR) Stages(cfg core.RenderConfig, nSamples int) StageSpans {
	if nSamples <= 0 {
		return StageSpans{}
	}

	onset := cfg.SamplesOfMilliseconds(o.Onset)
	decay := cfg.SamplesOfMilliseconds(o.Decay)
	release := cfg.SamplesOfMilliseconds(o.Release)

	timed := onset + decay + release
	if timed > nSamples {
		scale := float64(nSamples) / float64(timed)
		onset = int(float64(onset) * scale)
		decay = int(float64(decay) * scale)
		release = int(float64(release) * scale)
	}

	return StageSpans{
		Onset:   onset,
		Decay:   decay,
		Hold:    nSamples - onset - decay - release,
		Release: release,
	}
}

// LevelMacro samples concrete Levels from configured ranges.
type LevelMacro struct {
	Stable  [2]float64
	Peak    [2]float64
	Sustain [2]float64
}

// Gen draws concrete Levels uniformly from the macro ranges.
func (m LevelMacro) Gen(rng *rand.Rand) Levels {
	return Levels{
		Stable:  ranger.MotionRandom.Resolve(rng, m.Stable[0], m.Stable[1], 0),
		Peak:    ranger.MotionRandom.Resolve(rng, m.Peak[0], m.Peak[1], 0),
		Sustain: ranger.MotionRandom.Resolve(rng, m.Sustain[0], m.Sustain[1], 0),
	}
}

// ODRMacro samples a concrete ODR from millisecond ranges with a motion
// choice-list per stage.
type ODRMacro struct {
	Onset   [2]float64
	Decay   [2]float64
	Release [2]float64

	MO []ranger.Motion
	MD []ranger.Motion
	MR []ranger.Motion
}

// Gen resolves the macro to a concrete ODR. progress drives any
// Forward/Reverse motions in the per-stage choice lists.
func (m ODRMacro) Gen(rng *rand.Rand, progress float64) ODR {
	return ODR{
		Onset:   ranger.GrabVariant(rng, m.MO).Resolve(rng, m.Onset[0], m.Onset[1], progress),
		Decay:   ranger.GrabVariant(rng, m.MD).Resolve(rng, m.Decay[0], m.Decay[1], progress),
		Release: ranger.GrabVariant(rng, m.MR).Resolve(rng, m.Release[0], m.Release[1], progress),
	}
}

package ranger

import (
	"math/rand"

	"github.com/cwbudde/algo-synth/synth/core"
)

// Motion describes how a ranged parameter resolves to a concrete value
// across repeated draws within one macro scope.
type Motion int

const (
	// MotionConstant resolves to the range midpoint on every draw.
	MotionConstant Motion = iota
	// MotionForward sweeps linearly from min to max with progress.
	MotionForward
	// MotionReverse sweeps linearly from max to min with progress.
	MotionReverse
	// MotionRandom draws uniformly within the range.
	MotionRandom
	// MotionMin always resolves to the range minimum.
	MotionMin
	// MotionMax always resolves to the range maximum.
	MotionMax
	// MotionMean resolves to the range midpoint, an alias kept for
	// macro tables that distinguish it from Constant.
	MotionMean
)

// Resolve turns a [min, max] range into a concrete value. progress is
// the normalized position within the macro's scope (clamped to [0,1])
// and only affects Forward and Reverse.
func (m Motion) Resolve(rng *rand.Rand, min, max, progress float64) float64 {
	if min > max {
		min, max = max, min
	}
	p := core.Clamp(progress, 0, 1)

	switch m {
	case MotionForward:
		return min + (max-min)*p
	case MotionReverse:
		return max - (max-min)*p
	case MotionRandom:
		return min + rng.Float64()*(max-min)
	case MotionMin:
		return min
	case MotionMax:
		return max
	default: // Constant, Mean
		return (min + max) / 2
	}
}

// GrabVariant picks one Motion uniformly from the given candidates.
// Returns MotionConstant for an empty list.
func GrabVariant(rng *rand.Rand, candidates []Motion) Motion {
	if len(candidates) == 0 {
		return MotionConstant
	}
	return candidates[rng.Intn(len(candidates))]
}

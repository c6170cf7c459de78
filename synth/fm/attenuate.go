package fm

import (
	"math"

	"github.com/cwbudde/algo-synth/synth/core"
)

// CascadedGain fades gain with modulator nesting depth k so deep
// modulators contribute proportionally less energy. Sub-unity gains
// contract as gain^(1+2k); gains above one are pulled toward unity as
// gain^(1/(1+2k)). Unity is the fixed point at every depth.
func CascadedGain(gain float64, k int) float64 {
	if gain == 1 {
		return 1
	}
	exp := float64(1 + 2*k)
	if gain < 1 {
		return math.Pow(gain, exp)
	}
	return math.Pow(gain, 1/exp)
}

// AttenuateModIndexByVel maps note velocity to a modulation index
// scale in [0, sqrt2]. Velocity around 0.7 is roughly neutral; low
// velocities thin the spectrum, full velocity expands it.
func AttenuateModIndexByVel(velocity float64) float64 {
	x := core.Clamp(velocity, 0, 1)
	return math.Sqrt(2 * x * x)
}

// AttenuateModIndexByFreq reduces modulation depth as pitch rises, to
// keep high notes from turning harsh.
func AttenuateModIndexByFreq(freq float64) float64 {
	return math.Pow(2, 1-math.Log2(freq))
}

// NoteModIndex combines the velocity and frequency attenuations for
// one note event.
func NoteModIndex(freq, velocity float64) float64 {
	return AttenuateModIndexByVel(velocity) * AttenuateModIndexByFreq(freq)
}

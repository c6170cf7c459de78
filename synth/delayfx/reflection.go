package delayfx

import "math"

// SpeedOfSound is the propagation speed used by the surface model, in
// meters per second (dry air at roughly 20 degrees C).
const SpeedOfSound = 343.0

// Surface models a reflecting boundary for the room/surface helper:
// its distance from the source in meters, an energy coefficient in
// [0, 1], and whether the boundary is rigid (or the far medium is
// higher-density), which flips the reflected phase.
type Surface struct {
	Distance    float64
	Coefficient float64
	Rigid       bool
}

// TimeDelay is the round-trip travel time to the surface and back, in
// seconds.
func (s Surface) TimeDelay() float64 {
	return 2 * s.Distance / SpeedOfSound
}

// PhaseOffset is the phase a component at the given frequency
// accumulates over the round trip, in radians.
func (s Surface) PhaseOffset(frequency float64) float64 {
	return 2 * math.Pi * frequency * s.TimeDelay()
}

// PhaseShift is the phase discontinuity introduced at the boundary:
// pi for a rigid or higher-density boundary, zero otherwise.
func (s Surface) PhaseShift() float64 {
	if s.Rigid {
		return math.Pi
	}
	return 0
}

// Reflect applies the surface to one spectral component, returning the
// reflected magnitude and phase.
func (s Surface) Reflect(frequency, magnitude, phase float64) (float64, float64) {
	coeff := s.Coefficient
	if coeff < 0 {
		coeff = 0
	} else if coeff > 1 {
		coeff = 1
	}
	return magnitude * coeff, phase + s.PhaseOffset(frequency) + s.PhaseShift()
}

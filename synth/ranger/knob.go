package ranger

import "math/rand"

// Knob holds the three free parameters steering one modulation shape.
// Each is nominally in [0, 1] except where a shape documents a wider
// domain.
type Knob struct {
	A float64
	B float64
	C float64
}

// KnobMacro carries a sampling range and a Motion per knob field.
// Resolution to a concrete Knob happens once, when the macro is applied
// to a note or stem, never per sample.
type KnobMacro struct {
	A [2]float64
	B [2]float64
	C [2]float64

	MA Motion
	MB Motion
	MC Motion
}

// Gen resolves the macro to a concrete Knob. progress is the normalized
// position of this draw within the macro's scope (e.g. note position
// within the melody) and drives Forward/Reverse motions.
func (m KnobMacro) Gen(rng *rand.Rand, progress float64) Knob {
	return Knob{
		A: m.MA.Resolve(rng, m.A[0], m.A[1], progress),
		B: m.MB.Resolve(rng, m.B[0], m.B[1], progress),
		C: m.MC.Resolve(rng, m.C[0], m.C[1], progress),
	}
}

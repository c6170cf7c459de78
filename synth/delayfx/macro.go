package delayfx

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-synth/synth/ranger"
)

// Macro describes ranges from which concrete delay parameters are
// drawn per note: candidate echo spacings in cycles, gain/mix/echo
// ranges, candidate stereo fields, and the motion policy for each
// sampled value.
type Macro struct {
	GainRange   [2]float64
	TimesCycles []float64
	EchoesRange [2]int
	MixRange    [2]float64
	Pan         []StereoField

	MEcho []ranger.Motion
	MGain []ranger.Motion
	MMix  []ranger.Motion
}

// Gen draws one concrete Params from the macro. An echo spacing is
// picked uniformly from the cycle list and converted to seconds via
// cps; gain, mix, and echo count resolve through their motion policies
// at the given progress; the stereo field is a uniform choice. An
// empty cycle or pan list falls back to the passthrough value for that
// field.
func (m Macro) Gen(rng *rand.Rand, cps, progress float64) Params {
	var lenSeconds float64
	if len(m.TimesCycles) > 0 && cps > 0 {
		lenSeconds = m.TimesCycles[rng.Intn(len(m.TimesCycles))] / cps
	}

	gain := ranger.GrabVariant(rng, m.MGain).Resolve(rng, m.GainRange[0], m.GainRange[1], progress)
	mix := ranger.GrabVariant(rng, m.MMix).Resolve(rng, m.MixRange[0], m.MixRange[1], progress)

	echoes := ranger.GrabVariant(rng, m.MEcho).
		Resolve(rng, float64(m.EchoesRange[0]), float64(m.EchoesRange[1]), progress)
	nEchoes := int(math.Round(echoes))
	if nEchoes < 0 {
		nEchoes = 0
	}

	pan := Mono()
	if len(m.Pan) > 0 {
		pan = m.Pan[rng.Intn(len(m.Pan))]
	}

	return Params{
		LenSeconds: lenSeconds,
		NEchoes:    nEchoes,
		Gain:       gain,
		Mix:        mix,
		Pan:        pan,
	}
}

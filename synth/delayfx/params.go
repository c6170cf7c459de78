package delayfx

import "github.com/cwbudde/algo-synth/synth/core"

// StereoField places delay replicas in the stereo image: either
// centered (mono) or with independent left/right weights.
type StereoField struct {
	stereo bool
	Left   float64
	Right  float64
}

// Mono returns a centered stereo field.
func Mono() StereoField { return StereoField{} }

// LeftRight returns a stereo field with the given channel weights.
func LeftRight(left, right float64) StereoField {
	return StereoField{stereo: true, Left: left, Right: right}
}

// LeftOnly places all delay energy in the left channel.
func LeftOnly(weight float64) StereoField {
	return LeftRight(weight, 0)
}

// RightOnly places all delay energy in the right channel.
func RightOnly(weight float64) StereoField {
	return LeftRight(0, weight)
}

// IsMono reports whether the field is centered.
func (s StereoField) IsMono() bool { return !s.stereo }

// Params is one concrete delay configuration: echo spacing in seconds,
// echo count, per-echo decay gain, wet mix, and stereo placement.
type Params struct {
	LenSeconds float64
	NEchoes    int
	Gain       float64
	Mix        float64
	Pan        StereoField
}

// Passthrough is the identity delay.
var Passthrough = Params{}

// IsPassthrough reports whether the delay has no audible effect, so
// callers can skip replica processing entirely.
func (p Params) IsPassthrough() bool {
	return p.Mix == 0 || p.LenSeconds == 0 || p.Gain == 0 || p.NEchoes == 0
}

// SamplesPerEcho is the echo spacing in samples.
func (p Params) SamplesPerEcho(cfg core.RenderConfig) int {
	return int(p.LenSeconds * cfg.SampleRate)
}

// EchoGain is the amplitude coefficient for sample j of delay replica
// r. Replica zero is the dry signal at unity; a later replica is
// silent before its physical arrival time and decays geometrically
// after it.
func (p Params) EchoGain(cfg core.RenderConfig, j, replica int) float64 {
	if replica == 0 || p.IsPassthrough() {
		return 1
	}
	if j < p.SamplesPerEcho(cfg)*replica {
		return 0
	}
	g := p.Mix
	for r := 0; r < replica; r++ {
		g *= p.Gain
	}
	return g
}

// TailLength is the number of samples the delay rings past a note: the
// arrival offset of the final echo.
func (p Params) TailLength(cfg core.RenderConfig) int {
	return p.SamplesPerEcho(cfg) * p.NEchoes
}

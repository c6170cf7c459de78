package ranger

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-synth/synth/core"
)

// Lifespan names one long-form amplitude envelope spanning a whole note.
// Each produces values in [0, 1]; the shapes were designed on a
// spectrogram axis where k is the partial index and d the duration in
// cycles.
type Lifespan int

const (
	LifespanFall Lifespan = iota
	LifespanBurst
	LifespanSnap
	LifespanSpring
	LifespanPluck
	LifespanBloom
	LifespanPad
	LifespanDrone
)

// Lifespans lists every envelope variant for table-driven selection.
var Lifespans = []Lifespan{
	LifespanFall, LifespanBurst, LifespanSnap, LifespanSpring,
	LifespanPluck, LifespanBloom, LifespanPad, LifespanDrone,
}

const (
	// lifespanK bounds the partial index scaling in the fall and pluck
	// shapes.
	lifespanK = 2000.0
	ePi       = math.E * math.Pi
)

// reluCoeff shapes the soft rectifier used by the pluck envelope.
const reluCoeff = 0.38

func softRelu(y float64) float64 {
	pa := 3 * (reluCoeff - y)
	pb := 1 - 2*reluCoeff
	return y / (1 + math.Exp(pa/pb))
}

func hEntry(y float64) float64 {
	return 1 - 2/(1+math.Exp(24*math.Pi*y))
}

// hExit is a steep tanh-like release contour: no effect at the start of
// the signal, zeroing at the end.
func hExit(y float64) float64 {
	return -math.Exp(-0.35*y) * hEntry(y-1)
}

func lifespanFall(k int, x, d float64) float64 {
	kf := float64(k)
	a := math.Exp(x * (1 - 1/math.Sqrt(kf+1)))
	b := 1 - (a-1)/1.718
	scale := ((lifespanK - kf) / lifespanK) * (b * b) / (kf * kf)
	return math.Max(0, scale*hExit(x))
}

func lifespanBurst(k int, x, d float64) float64 {
	kScale := -6 * math.Cbrt(float64(k))
	return math.Tanh(kScale*x+2)/2 + 0.5
}

func lifespanSnap(k int, x, d float64) float64 {
	return math.Exp(-x * math.Cbrt(float64(k)) * ePi)
}

func lifespanSpring(k int, x, d float64) float64 {
	y := 2 * (1/(x+1) - 0.5)
	c := core.Clamp(math.Log2(d), 2, 6)
	return math.Abs(math.Sin(y * c * 2 * math.Pi))
}

func lifespanPluck(k int, x, d float64) float64 {
	kf := float64(k)
	translate := 0.5 - 0.5*kf/lifespanK
	scale := -math.Pi*kf/lifespanK + math.Pi
	a := math.Tanh(scale * (x - translate))
	y := -a/2 + 0.5
	exit := 1 - x*math.Cbrt(kf*kf-1)
	return math.Max(0, softRelu(y*exit))
}

func lifespanBloom(k int, x, d float64) float64 {
	kf := float64(k)
	y := x/3 + x*x*x/3 + 1.0/6 + math.Sin(kf/16*2*math.Pi*x+2*math.Pi*d)/6
	c := math.Cbrt(1 + d)
	a := math.Tanh(c * 2 * math.Pi * math.Pow(x, 1.5))
	b := -math.Tanh(c * 2 * math.Pi * real(cmplx.Pow(complex(x-1, 0), 0.6)))
	return a * y * b
}

func lifespanPad(k int, x, d float64) float64 {
	const stable = 0.9
	g := math.Max(d, 0.001) * math.Pow(float64(k), 1.5)
	exps := [5]float64{1, 1.0 / 3, 1.0 / 7, 1.0 / 11, 1.0 / 13}
	v := 0.0
	for _, e := range exps {
		v += math.Sin(2 * math.Pi * g * math.Pow(x, e))
	}
	v /= float64(len(exps))
	y := stable + (1-stable)*v
	a := math.Tanh(d * d * 2 * math.Pi * x)
	b := -math.Tanh(d * 2 * math.Pi * (x - 1))
	return a * y * b
}

func lifespanDrone(k int, x, d float64) float64 {
	y := math.Tanh(4 * (d + 1) * x)
	b := -math.Tanh(2 * math.Pi * (x - 1) * math.Sqrt(2+d))
	return y * b
}

// At evaluates the lifespan pointwise for partial k at normalized
// position x over a note of d cycles. Output is clamped to [0, 1]; the
// underlying shapes live there already, the clamp only guards float
// drift at the boundaries.
func (l Lifespan) At(k int, x, d float64) float64 {
	if k < 1 {
		k = 1
	}
	x = core.Clamp(x, 0, 1)
	if d <= 0 {
		d = 1
	}

	var y float64
	switch l {
	case LifespanFall:
		y = lifespanFall(k, x, d)
	case LifespanBurst:
		y = lifespanBurst(k, x, d)
	case LifespanSnap:
		y = lifespanSnap(k, x, d)
	case LifespanSpring:
		y = lifespanSpring(k, x, d)
	case LifespanPluck:
		y = lifespanPluck(k, x, d)
	case LifespanBloom:
		y = lifespanBloom(k, x, d)
	case LifespanPad:
		y = lifespanPad(k, x, d)
	case LifespanDrone:
		y = lifespanDrone(k, x, d)
	default:
		y = 1
	}

	return core.Clamp(y, 0, 1)
}

// Sample renders the lifespan across nSamples using the (i+1)/n position
// convention, for partial k over a note of nCycles cycles.
func (l Lifespan) Sample(nSamples, k int, nCycles float64) []float64 {
	if nSamples <= 0 {
		return nil
	}

	out := make([]float64, nSamples)
	nf := float64(nSamples)
	for i := range out {
		out[i] = l.At(k, float64(i+1)/nf, nCycles)
	}
	return out
}

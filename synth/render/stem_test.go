package render

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-synth/synth/core"
	"github.com/cwbudde/algo-synth/synth/delayfx"
	"github.com/cwbudde/algo-synth/synth/fm"
	"github.com/cwbudde/algo-synth/synth/ranger"
	"github.com/cwbudde/algo-synth/synth/reverb"
	"github.com/cwbudde/algo-synth/synth/spectrum"
)

func mustSpectrum(t *testing.T, amps, muls, phis []float64) spectrum.Spectrum {
	t.Helper()
	s, err := spectrum.New(amps, muls, phis)
	if err != nil {
		t.Fatalf("spectrum: %v", err)
	}
	return s
}

func sineStem(t *testing.T) *Stem {
	t.Helper()
	return &Stem{Spectrum: mustSpectrum(t, []float64{1}, []float64{1}, []float64{0})}
}

func oneNote(cycles core.Ratio, ratio, vel float64) Melody {
	return Melody{{Dur: cycles, Ratio: ratio, Vel: vel}}
}

func TestAdditiveSineNote(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	stem := sineStem(t)

	out, err := stem.Render(cfg, rand.New(rand.NewSource(1)), oneNote(core.Ratio{Num: 1, Den: 10}, 1, 1), 440)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := cfg.SamplesOfCycles(0.1); len(out) != want {
		t.Fatalf("length: got %d, want %d", len(out), want)
	}

	headroom := core.DBToLinear(headroomDB)
	for _, j := range []int{1, 123, 999, 4000} {
		want := headroom * math.Sin(2*math.Pi*440*float64(j)/cfg.SampleRate)
		if math.Abs(out[j]-want) > 1e-9 {
			t.Fatalf("sample %d: got %v, want %v", j, out[j], want)
		}
	}
}

func TestRestsAndGatedNotesAreSilent(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	stem := sineStem(t)

	// Negative duration marks a rest.
	out, err := stem.Render(cfg, rand.New(rand.NewSource(1)), oneNote(core.Ratio{Num: -1, Den: 10}, 1, 1), 440)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("rest must trim to silence, got %d samples", len(out))
	}

	// Zero velocity sits at the gate threshold.
	out, err = stem.Render(cfg, rand.New(rand.NewSource(1)), oneNote(core.Ratio{Num: 1, Den: 10}, 1, 0), 440)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("gated note must trim to silence, got %d samples", len(out))
	}
}

func TestPartialsOutsideRenderableRangeSkipped(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	melody := oneNote(core.Ratio{Num: 1, Den: 10}, 1, 1)

	above := &Stem{Spectrum: mustSpectrum(t, []float64{1}, []float64{100}, []float64{0})}
	out, err := above.Render(cfg, rand.New(rand.NewSource(1)), melody, 440)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("partial above Nyquist must stay silent, got %d samples", len(out))
	}

	below := sineStem(t)
	out, err = below.Render(cfg, rand.New(rand.NewSource(1)), melody, 10)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("partial below the floor must stay silent, got %d samples", len(out))
	}
}

func TestAmplitudeKnobAttenuates(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	melody := oneNote(core.Ratio{Num: 1, Den: 10}, 1, 1)
	rng := rand.New(rand.NewSource(1))

	plain := sineStem(t)
	ref, err := plain.Render(cfg, rng, melody, 440)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	shaped := sineStem(t)
	shaped.Mods = ranger.KnobMods{
		Amp: []ranger.Ranger{{Shape: ranger.ShapePluck, Knob: ranger.Knob{A: 0.5}}},
	}
	out, err := shaped.Render(cfg, rng, melody, 440)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if p, q := peakAmplitude(out), peakAmplitude(ref); p >= q {
		t.Fatalf("amplitude fold must attenuate: %v >= %v", p, q)
	}
}

func TestClipThreshold(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	loud := &Stem{Spectrum: mustSpectrum(t, []float64{10}, []float64{1}, []float64{0})}

	out, err := loud.Render(cfg, rand.New(rand.NewSource(1)), oneNote(core.Ratio{Num: 1, Den: 10}, 1, 1), 440)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	// Sample 27 sits near the sine peak, well above unity before clipping.
	headroom := core.DBToLinear(headroomDB)
	if math.Abs(out[27]-headroom) > 1e-9 {
		t.Fatalf("sample 27 must clip to the threshold: got %v, want %v", out[27], headroom)
	}
	for j, v := range out {
		if math.Abs(v) > headroom+1e-9 {
			t.Fatalf("sample %d exceeds the clipped ceiling: %v", j, v)
		}
	}
}

func TestDelayReplicaTiming(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	stem := sineStem(t)
	stem.Delays = []delayfx.Params{{LenSeconds: 0.001, NEchoes: 1, Gain: 0.5, Mix: 1}}

	out, err := stem.Render(cfg, rand.New(rand.NewSource(1)), oneNote(core.Ratio{Num: 1, Den: 100}, 1, 1), 440)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	n := cfg.SamplesOfCycles(0.01)
	spe := stem.Delays[0].SamplesPerEcho(cfg)
	if len(out) != n+spe {
		t.Fatalf("length: got %d, want %d", len(out), n+spe)
	}

	// Tail samples carry only the echo, scaled by mix*gain and without
	// the dry-path headroom.
	for _, idx := range []int{n + 5, n + 20} {
		src := idx - spe
		want := 0.5 * math.Sin(2*math.Pi*440*float64(src)/cfg.SampleRate)
		if math.Abs(out[idx]-want) > 1e-9 {
			t.Fatalf("tail sample %d: got %v, want %v", idx, out[idx], want)
		}
	}

	// In-body samples sum the dry partial and the arrived echo.
	headroom := core.DBToLinear(headroomDB)
	j := 100
	dry := math.Sin(2 * math.Pi * 440 * float64(j) / cfg.SampleRate)
	echo := 0.5 * math.Sin(2*math.Pi*440*float64(j-spe)/cfg.SampleRate)
	want := headroom * (dry + echo)
	if math.Abs(out[j]-want) > 1e-9 {
		t.Fatalf("body sample %d: got %v, want %v", j, out[j], want)
	}
}

func TestMelodyCueOffsets(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	stem := sineStem(t)
	melody := Melody{
		{Dur: core.Ratio{Num: 1, Den: 10}, Ratio: 1, Vel: 1},
		{Dur: core.Ratio{Num: -1, Den: 10}, Ratio: 1, Vel: 1},
		{Dur: core.Ratio{Num: 1, Den: 10}, Ratio: 1, Vel: 1},
	}

	out, err := stem.Render(cfg, rand.New(rand.NewSource(1)), melody, 440)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	span := cfg.SamplesOfCycles(0.1)
	if len(out) <= 2*span {
		t.Fatalf("third note must start after the rest: %d samples", len(out))
	}
	for _, j := range []int{55, 1234} {
		if math.Abs(out[2*span+j]-out[j]) > 1e-9 {
			t.Fatalf("third note sample %d diverges from the first note", j)
		}
	}
	for j := span + 100; j < 2*span-100; j += 500 {
		if out[j] != 0 {
			t.Fatalf("rest region sample %d is audible: %v", j, out[j])
		}
	}
}

func TestOperatorStemMatchesCarrier(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	stem := &Stem{Operator: fm.Carrier(440)}

	out, err := stem.Render(cfg, rand.New(rand.NewSource(1)), oneNote(core.Ratio{Num: 1, Den: 10}, 1, 0.5), 440)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	headroom := core.DBToLinear(headroomDB)
	for _, j := range []int{3, 200, 3000} {
		want := headroom * 0.5 * math.Sin(2*math.Pi*440*float64(j)/cfg.SampleRate)
		if math.Abs(out[j]-want) > 1e-9 {
			t.Fatalf("sample %d: got %v, want %v", j, out[j], want)
		}
	}
}

func TestOperatorStemTransposesPerNote(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	op := fm.Carrier(440)
	stem := &Stem{Operator: op}

	out, err := stem.Render(cfg, rand.New(rand.NewSource(1)), oneNote(core.Ratio{Num: 1, Den: 10}, 2, 1), 440)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	headroom := core.DBToLinear(headroomDB)
	for _, j := range []int{3, 200} {
		want := headroom * math.Sin(2*math.Pi*880*float64(j)/cfg.SampleRate)
		if math.Abs(out[j]-want) > 1e-9 {
			t.Fatalf("sample %d: got %v, want %v", j, out[j], want)
		}
	}
	if op.Frequency != 440 {
		t.Fatalf("transposition must not mutate the stem's tree: %v", op.Frequency)
	}
}

func TestOperatorNonFiniteAbortsStem(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	op := fm.Carrier(440)
	op.ModGainEnvMul = fm.SampleEnvelope([]float64{math.NaN()})
	stem := &Stem{Operator: op}

	out, err := stem.Render(cfg, rand.New(rand.NewSource(1)), oneNote(core.Ratio{Num: 1, Den: 10}, 1, 1), 440)
	if !errors.Is(err, fm.ErrNonFinite) {
		t.Fatalf("got %v, want ErrNonFinite", err)
	}
	if out != nil {
		t.Fatalf("aborted render must not return samples, got %d", len(out))
	}
}

func TestReverbStemDeterministicWithSeed(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	melody := oneNote(core.Ratio{Num: 1, Den: 10}, 1, 1)

	render := func(seed int64) []float64 {
		stem := sineStem(t)
		stem.Reverbs = []reverb.Params{{Mix: 0.3, Amp: 0.5, Dur: 0.01, Rate: 0.5}}
		out, err := stem.Render(cfg, rand.New(rand.NewSource(seed)), melody, 440)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		return out
	}

	a, b := render(42), render(42)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs across identical seeds", i)
		}
	}
}

func BenchmarkStemRender(b *testing.B) {
	cfg := core.DefaultRenderConfig()
	stem := &Stem{Spectrum: spectrum.Spectrum{
		Amps: []float64{1, 0.5, 0.25, 0.125},
		Muls: []float64{1, 2, 3, 4},
		Phis: []float64{0, 0, 0, 0},
	}}
	melody := oneNote(core.Ratio{Num: 1, Den: 4}, 1, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := stem.Render(cfg, rand.New(rand.NewSource(1)), melody, 220); err != nil {
			b.Fatal(err)
		}
	}
}

package fm

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/synth/core"
)

func TestComputeBandwidthBareCarrier(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	center, bw := ComputeBandwidth(cfg, Carrier(440), 0, 0)
	if center != 440 {
		t.Fatalf("center: got %v", center)
	}
	if bw != 1 {
		t.Fatalf("a plain sine occupies a nominal 1 Hz: got %v", bw)
	}
}

func TestComputeBandwidthSingleModulator(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	carrier := Carrier(440)
	carrier.Modulators = append(carrier.Modulators, ModulateWith(Modulator(10, 1)))

	center, bw := ComputeBandwidth(cfg, carrier, 0, 0)
	if center != 440 {
		t.Fatalf("center: got %v", center)
	}
	// Carson's rule for index 1 at 10 Hz: 2 * 1 * 10.
	if bw != 20 {
		t.Fatalf("bandwidth: got %v, want 20", bw)
	}
}

func TestComputeBandwidthNestedAndSiblings(t *testing.T) {
	cfg := core.DefaultRenderConfig()

	inner := Modulator(20, 1)
	mid := Modulator(10, 1)
	mid.Modulators = append(mid.Modulators, ModulateWith(inner))
	carrier := Carrier(440)
	carrier.Modulators = append(carrier.Modulators, ModulateWith(mid))

	_, bw := ComputeBandwidth(cfg, carrier, 0, 0)
	if bw != 2*10+2*20 {
		t.Fatalf("nested bandwidth: got %v, want 60", bw)
	}

	sib := Carrier(440)
	sib.Modulators = append(sib.Modulators,
		ModulateWith(Modulator(10, 1)),
		ModulateWith(Modulator(15, 1)))
	_, bw = ComputeBandwidth(cfg, sib, 0, 0)
	if bw != 2*10+2*15 {
		t.Fatalf("sibling bandwidth: got %v, want 50", bw)
	}
}

func TestComputeBandwidthOffsetFrequency(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	op := Modulator(400, 2)
	center, bw := ComputeBandwidth(cfg, op, 40, 0)
	if center != 440 {
		t.Fatalf("offset center: got %v", center)
	}
	if bw != 2*2*440 {
		t.Fatalf("offset bandwidth: got %v", bw)
	}
}

func TestRemainingBandwidth(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	op := Modulator(440, 1)

	got := RemainingBandwidth(cfg, op, 20000, 0)
	want := 20000.0 - 2*440
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("remaining: got %v, want %v", got, want)
	}

	// Never negative, and the budget caps at Nyquist.
	if RemainingBandwidth(cfg, Modulator(cfg.Nyquist(), 100), 1e9, 0) != 0 {
		t.Fatal("over-consumed spectrum must report zero remaining")
	}
}

func TestRemainingRangeInBounds(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	op := Modulator(1000, 0.1) // band 1000 +/- 100

	below, above, ok := RemainingRange(cfg, op, 0, 0, 20, 20000)
	if !ok {
		t.Fatal("band 900..1100 lies strictly inside 20..20000")
	}
	if math.Abs(below-(900-20)) > 1e-9 || math.Abs(above-(20000-1100)) > 1e-9 {
		t.Fatalf("headroom: below %v above %v", below, above)
	}
}

func TestRemainingRangeOutOfBounds(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	op := Modulator(100, 2) // band 100 +/- 200 crosses zero

	if _, _, ok := RemainingRange(cfg, op, 0, 0, 20, 20000); ok {
		t.Fatal("band crossing the lower edge must report out of range")
	}
}

func TestComputeMaxModFreq(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	got := ComputeMaxModFreq(cfg, 4000, 11)
	want := (cfg.Nyquist() - 4000) / 12
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("max mod freq: got %v, want %v", got, want)
	}

	if ComputeMaxModFreq(cfg, cfg.Nyquist()+1, 1) != 0 {
		t.Fatal("carrier above Nyquist leaves no modulation headroom")
	}
}

func TestDetermineModFreq(t *testing.T) {
	got, err := DetermineModFreq(8000, 1)
	if err != nil {
		t.Fatalf("determine: %v", err)
	}
	if got != 2000 {
		t.Fatalf("mod freq: got %v, want 2000", got)
	}

	// Clamped to the audible range.
	lo, err := DetermineModFreq(1, 1)
	if err != nil || lo != 20 {
		t.Fatalf("low clamp: got %v err %v", lo, err)
	}

	if _, err := DetermineModFreq(8000, 0); !errors.Is(err, ErrNonPositiveModIndex) {
		t.Fatalf("want ErrNonPositiveModIndex, got %v", err)
	}
}

func TestDetermineModIndex(t *testing.T) {
	got, err := DetermineModIndex(8000, 1000)
	if err != nil {
		t.Fatalf("determine: %v", err)
	}
	if got != 3 {
		t.Fatalf("mod index: got %v, want 3", got)
	}

	zero, err := DetermineModIndex(100, 1000)
	if err != nil || zero != 0 {
		t.Fatalf("starved bandwidth must floor at zero: got %v err %v", zero, err)
	}

	if _, err := DetermineModIndex(8000, 0); !errors.Is(err, ErrNonPositiveModFreq) {
		t.Fatalf("want ErrNonPositiveModFreq, got %v", err)
	}
}

package fm

import (
	"math"
	"testing"
)

func TestModIndexFromLevelMonotonic(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 20; i++ {
		input := float64(i) * 0.05
		got := ModIndexFromLevel(input)
		if got < prev {
			t.Fatalf("index must not decrease: input %.2f got %v, previous %v", input, got, prev)
		}
		prev = got
	}
}

func TestModIndexFromLevelBounds(t *testing.T) {
	if got := ModIndexFromLevel(0); got > 1e-3 {
		t.Fatalf("zero level must be near-silent: %v", got)
	}
	if got := ModIndexFromLevel(1); got >= 13 {
		t.Fatalf("full level must stay below 13: %v", got)
	}

	// Out-of-range inputs clamp.
	if ModIndexFromLevel(-1) != ModIndexFromLevel(0) {
		t.Fatal("negative input must clamp to zero")
	}
	if ModIndexFromLevel(2) != ModIndexFromLevel(1) {
		t.Fatal("over-unity input must clamp to one")
	}
}

func TestModIndexFromLevelExtremes(t *testing.T) {
	// Full level hits TL 0: pi * 2^(33/16).
	want := math.Pi * math.Pow(2, 33.0/16.0)
	if got := ModIndexFromLevel(1); math.Abs(got-want) > 1e-12 {
		t.Fatalf("full level: got %v, want %v", got, want)
	}
}

func TestDXToModIndex(t *testing.T) {
	if DXToModIndex(99) != ModIndexFromLevel(1) {
		t.Fatal("DX level 99 must map to full normalized level")
	}
	if DXToModIndex(0) != ModIndexFromLevel(0) {
		t.Fatal("DX level 0 must map to zero normalized level")
	}
}

func TestDexedDetune(t *testing.T) {
	if got := DexedDetune(440, 0); got != 0 {
		t.Fatalf("center knob must not detune: %v", got)
	}
	up := DexedDetune(440, 7)
	down := DexedDetune(440, -7)
	if up <= 0 || down >= 0 {
		t.Fatalf("knob direction broken: up %v down %v", up, down)
	}
	if math.Abs(up+down) > 1e-12 {
		t.Fatalf("detune must be symmetric: up %v down %v", up, down)
	}

	want := math.Log2(440) / math.Pi
	if math.Abs(up-want) > 1e-12 {
		t.Fatalf("full detune: got %v, want %v", up, want)
	}
}

func TestCascadedGain(t *testing.T) {
	for k := 0; k < 6; k++ {
		if got := CascadedGain(1, k); got != 1 {
			t.Fatalf("unity gain must be a fixed point at depth %d: %v", k, got)
		}
	}

	// Sub-unity gains contract with depth.
	if got := CascadedGain(0.5, 1); math.Abs(got-math.Pow(0.5, 3)) > 1e-12 {
		t.Fatalf("contractive: got %v", got)
	}
	if CascadedGain(0.5, 2) >= CascadedGain(0.5, 1) {
		t.Fatal("deeper sub-unity gain must be smaller")
	}

	// Expansive gains are pulled toward unity.
	if got := CascadedGain(4, 1); math.Abs(got-math.Pow(4, 1.0/3.0)) > 1e-12 {
		t.Fatalf("expansive: got %v", got)
	}
	if CascadedGain(4, 2) >= CascadedGain(4, 1) {
		t.Fatal("deeper expansive gain must be closer to unity")
	}
}

func TestAttenuateModIndexByVel(t *testing.T) {
	if got := AttenuateModIndexByVel(0); got != 0 {
		t.Fatalf("zero velocity: %v", got)
	}
	if got := AttenuateModIndexByVel(1); math.Abs(got-math.Sqrt2) > 1e-12 {
		t.Fatalf("full velocity: got %v, want sqrt2", got)
	}
	if got := AttenuateModIndexByVel(0.5); math.Abs(got-math.Sqrt(0.5)) > 1e-12 {
		t.Fatalf("half velocity: got %v", got)
	}

	// Clamped outside [0, 1], monotone inside.
	if AttenuateModIndexByVel(2) != AttenuateModIndexByVel(1) {
		t.Fatal("over-unity velocity must clamp")
	}
	prev := -1.0
	for v := 0.0; v <= 1.0; v += 0.1 {
		got := AttenuateModIndexByVel(v)
		if got < prev {
			t.Fatalf("must be monotone: v=%v got %v prev %v", v, got, prev)
		}
		prev = got
	}
}

func TestAttenuateModIndexByFreq(t *testing.T) {
	// 2^(1 - log2 f): an octave up halves the depth.
	a := AttenuateModIndexByFreq(220)
	b := AttenuateModIndexByFreq(440)
	if math.Abs(a-2*b) > 1e-12 {
		t.Fatalf("octave step must halve depth: %v vs %v", a, b)
	}
	if got := AttenuateModIndexByFreq(2); math.Abs(got-1) > 1e-12 {
		t.Fatalf("f=2 is the identity point: %v", got)
	}
}

func TestNoteModIndexDiminishesWithPitch(t *testing.T) {
	prev := math.Inf(1)
	for register := 4; register < 15; register++ {
		freq := math.Pow(2, float64(register))
		got := NoteModIndex(freq, 1)
		if got >= prev {
			t.Fatalf("register %d: index %v must shrink as pitch rises (prev %v)", register, got, prev)
		}
		prev = got
	}
}

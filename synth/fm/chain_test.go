package fm

import (
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-synth/synth/core"
)

func TestGenerateSerialChainStaysUnderFilter(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	rng := rand.New(rand.NewSource(11))

	chain := GenerateSerialChain(cfg, rng, Carrier(440), cfg.Nyquist())
	if chain == nil {
		t.Fatal("a bare carrier at 440 Hz has plenty of headroom, chain must not be nil")
	}
	if len(chain.Modulators) == 0 {
		t.Fatal("chain must have added at least one modulator")
	}

	_, bw := ComputeBandwidth(cfg, chain, 0, 0)
	if bw > cfg.Nyquist() {
		t.Fatalf("chain bandwidth %v exceeds Nyquist %v", bw, cfg.Nyquist())
	}
}

func TestGenerateSerialChainLeavesInputIntact(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	rng := rand.New(rand.NewSource(5))
	carrier := Carrier(440)

	GenerateSerialChain(cfg, rng, carrier, cfg.Nyquist())
	if len(carrier.Modulators) != 0 {
		t.Fatal("chain generation must work on a copy")
	}
}

func TestGenerateSerialChainDeterministic(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	a := GenerateSerialChain(cfg, rand.New(rand.NewSource(7)), Carrier(330), cfg.Nyquist())
	b := GenerateSerialChain(cfg, rand.New(rand.NewSource(7)), Carrier(330), cfg.Nyquist())
	if a == nil || b == nil {
		t.Fatal("chains must not be nil")
	}
	if len(a.Modulators) != len(b.Modulators) {
		t.Fatalf("same seed must produce the same chain: %d vs %d modulators",
			len(a.Modulators), len(b.Modulators))
	}
	for i := range a.Modulators {
		if a.Modulators[i].Op.Frequency != b.Modulators[i].Op.Frequency {
			t.Fatalf("modulator %d frequency differs", i)
		}
	}
}

func TestPruneRemovesDeepestChain(t *testing.T) {
	inner := Modulator(55, 1)
	mid := Modulator(110, 1)
	mid.Modulators = append(mid.Modulators, ModulateWith(inner))
	carrier := Carrier(440)
	carrier.Modulators = append(carrier.Modulators,
		ModulateWith(Modulator(220, 1)),
		ModulateWith(mid))

	pruned := Prune(carrier)
	if pruned.Depth() >= carrier.Depth() {
		t.Fatalf("prune must shrink the tree: depth %d -> %d", carrier.Depth(), pruned.Depth())
	}
	if len(carrier.Modulators[1].Op.Modulators) != 1 {
		t.Fatal("prune must not mutate its input")
	}
}

func TestPruneLeafBecomesSine(t *testing.T) {
	pruned := Prune(Modulator(440, 3))
	if pruned.ModulationIndex != 0 {
		t.Fatalf("pruned leaf must be a plain sine: index %v", pruned.ModulationIndex)
	}
	if pruned.Frequency != 440 {
		t.Fatalf("pruned leaf keeps its frequency: %v", pruned.Frequency)
	}
}

func TestPruneConvergesUnderRepeatedApplication(t *testing.T) {
	cfg := core.DefaultRenderConfig()
	rng := rand.New(rand.NewSource(3))

	op := GenerateSerialChain(cfg, rng, Carrier(110), cfg.Nyquist())
	if op == nil {
		t.Fatal("chain must not be nil")
	}

	// Repeated pruning must reach a bare sine in bounded steps.
	for i := 0; i < 1000; i++ {
		_, bw := ComputeBandwidth(cfg, op, 0, 0)
		if bw <= 1 {
			return
		}
		op = Prune(op)
	}
	t.Fatal("prune failed to converge to a bare sine")
}

package render

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/synth/core"
	"github.com/cwbudde/algo-synth/synth/delayfx"
	"github.com/cwbudde/algo-synth/synth/fm"
	"github.com/cwbudde/algo-synth/synth/reverb"
)

// ErrOverweight is returned when the weights of a Mix sum above 1:
// an overweight mix would clip after summation.
var ErrOverweight = errors.New("render: mix weights must not sum above 1")

// Renderable is one node of a mix tree. Concrete variants are
// Instance, Group, Mix, Sample, FMOp and Tacet.
type Renderable interface {
	Render(cfg core.RenderConfig, rng *rand.Rand) ([]float64, error)
}

// Instance renders a single stem against its melody and root
// frequency.
type Instance struct {
	Stem     *Stem
	Melody   Melody
	RootFreq float64
}

func (in Instance) Render(cfg core.RenderConfig, rng *rand.Rand) ([]float64, error) {
	return in.Stem.Render(cfg, rng, in.Melody, in.RootFreq)
}

// Group sums its children after padding them to a common length.
type Group []Renderable

func (g Group) Render(cfg core.RenderConfig, rng *rand.Rand) ([]float64, error) {
	bufs, err := renderAll(cfg, rng, g)
	if err != nil {
		return nil, err
	}
	return PadAndMix(bufs), nil
}

// Weighted pairs a mix weight with a child renderable.
type Weighted struct {
	Weight     float64
	Renderable Renderable
}

// Mix combines its children linearly by weight. Weights must sum to at
// most 1 so the result cannot clip.
type Mix []Weighted

func (m Mix) Render(cfg core.RenderConfig, rng *rand.Rand) ([]float64, error) {
	total := 0.0
	for _, w := range m {
		total += w.Weight
	}
	if total > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrOverweight, total)
	}

	children := make([]Renderable, len(m))
	for i, w := range m {
		children[i] = w.Renderable
	}
	bufs, err := renderAll(cfg, rng, children)
	if err != nil {
		return nil, err
	}

	maxLen := 0
	for _, b := range bufs {
		if len(b) > maxLen {
			maxLen = len(b)
		}
	}
	mixed := make([]float64, maxLen)
	for i, b := range bufs {
		vecmath.ScaleBlock(b, b, m[i].Weight)
		vecmath.AddBlockInPlace(mixed[:len(b)], b)
	}
	return mixed, nil
}

// Sample plays back pre-recorded PCM instead of synthesizing. When
// Cycles is positive the buffer is resampled to span that many cycles
// at the configured playback rate; otherwise it plays as-is.
type Sample struct {
	PCM    []float64
	Cycles float64
}

func (s Sample) Render(cfg core.RenderConfig, _ *rand.Rand) ([]float64, error) {
	if s.Cycles > 0 {
		return Rescale(s.PCM, cfg.SamplesOfCycles(s.Cycles)), nil
	}
	out := make([]float64, len(s.PCM))
	copy(out, s.PCM)
	return out, nil
}

// FMOp renders an FM operator tree against a melody, transposing the
// tree per note. A non-finite operator sample fails the whole node.
type FMOp struct {
	Op       *fm.Operator
	Melody   Melody
	RootFreq float64
}

func (f FMOp) Render(cfg core.RenderConfig, rng *rand.Rand) ([]float64, error) {
	stem := Stem{Operator: f.Op}
	return stem.Render(cfg, rng, f.Melody, f.RootFreq)
}

// Tacet is silence spanning a cycle count.
type Tacet struct {
	Cycles float64
}

func (t Tacet) Render(cfg core.RenderConfig, _ *rand.Rand) ([]float64, error) {
	n := cfg.SamplesOfCycles(t.Cycles)
	if n < 0 {
		n = 0
	}
	return make([]float64, n), nil
}

// renderAll renders every node on its own goroutine. Each child gets a
// generator seeded from the parent before the fan-out, so results stay
// deterministic for a seeded parent regardless of scheduling.
func renderAll(cfg core.RenderConfig, rng *rand.Rand, items []Renderable) ([][]float64, error) {
	seeds := make([]int64, len(items))
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	bufs := make([][]float64, len(items))
	errs := make([]error, len(items))
	var wg sync.WaitGroup
	for i, r := range items {
		wg.Add(1)
		go func(i int, r Renderable) {
			defer wg.Done()
			bufs[i], errs[i] = r.Render(cfg, rand.New(rand.NewSource(seeds[i])))
		}(i, r)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("render: node %d: %w", i, err)
		}
	}
	return bufs, nil
}

// Combine reduces a renderable list to one buffer: a parallel render
// of every node followed by a pad-and-mix reduce.
func Combine(cfg core.RenderConfig, rng *rand.Rand, renderables []Renderable) ([]float64, error) {
	bufs, err := renderAll(cfg, rng, renderables)
	if err != nil {
		return nil, err
	}
	return PadAndMix(bufs), nil
}

// CombineWithRoom runs Combine and then the room-level effect chain:
// delay replicas over the mixed buffer, then each reverb in order.
func CombineWithRoom(cfg core.RenderConfig, rng *rand.Rand, renderables []Renderable, delays []delayfx.Params, reverbs []reverb.Params) ([]float64, error) {
	mixed, err := Combine(cfg, rng, renderables)
	if err != nil {
		return nil, err
	}

	mixed = applyRoomDelays(cfg, mixed, delays)
	for _, rv := range reverbs {
		mixed, err = reverb.Apply(cfg, rng, mixed, rv)
		if err != nil {
			return nil, err
		}
	}
	return mixed, nil
}

// applyRoomDelays writes delay replicas over a finished mix, extending
// the buffer by the longest tail. Unity clip and zero gate apply; the
// dry signal passes through unscaled.
func applyRoomDelays(cfg core.RenderConfig, sig []float64, delays []delayfx.Params) []float64 {
	maxTail := 0
	for _, dp := range delays {
		if dp.IsPassthrough() {
			continue
		}
		if t := dp.TailLength(cfg); t > maxTail {
			maxTail = t
		}
	}
	if maxTail == 0 {
		return sig
	}

	out := make([]float64, len(sig)+maxTail)
	copy(out, sig)
	for j, v := range sig {
		for _, dp := range delays {
			if dp.IsPassthrough() {
				continue
			}
			spe := dp.SamplesPerEcho(cfg)
			for r := 1; r <= dp.NEchoes; r++ {
				g := dp.EchoGain(cfg, j, r)
				if g == 0 {
					continue
				}
				idx := j + spe*r
				if idx >= len(out) {
					continue
				}
				out[idx] += clipGate(g*v, 1, 0)
			}
		}
	}
	return out
}

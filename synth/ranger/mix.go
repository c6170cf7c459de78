package ranger

import (
	"errors"
	"fmt"
)

// ErrOverweight is returned when weighted-mix weights sum above 1.
// Overweight mixes would clip silently, so this is treated as fatal by
// callers.
var ErrOverweight = errors.New("ranger: mix weights must not sum above 1")

// Weighted pairs a mix weight with a Ranger.
type Weighted struct {
	Weight float64
	Ranger Ranger
}

// Mix evaluates the weighted sum of the given rangers at (k, x, d).
// Weights summing to at most 1 keep the result within [0, 1] for
// amplitude shapes; weights above 1 fail fast with ErrOverweight.
func Mix(k int, x, d float64, mixers []Weighted) (float64, error) {
	total := 0.0
	for _, m := range mixers {
		total += m.Weight
	}
	if total > 1 {
		return 0, fmt.Errorf("%w: got %v", ErrOverweight, total)
	}

	y := 0.0
	for _, m := range mixers {
		y += m.Weight * m.Ranger.Value(k, x, d)
	}
	return y, nil
}

// KnobMods holds the per-axis modulation collections for one stem.
// Each axis folds its rangers with the axis-specific rule: amplitude
// and frequency multiply, phase adds.
type KnobMods struct {
	Amp   []Ranger
	Freq  []Ranger
	Phase []Ranger
}

// AmpAt folds the amplitude axis at (k, x, d). Each amplitude ranger
// attenuates within [0, 1], so the product never amplifies.
func (m KnobMods) AmpAt(k int, x, d float64) float64 {
	y := 1.0
	for _, r := range m.Amp {
		y *= r.Value(k, x, d)
	}
	return y
}

// FreqAt folds the frequency axis at (k, x, d), compounding ratio
// offsets multiplicatively.
func (m KnobMods) FreqAt(k int, x, d float64) float64 {
	y := 1.0
	for _, r := range m.Freq {
		y *= r.Value(k, x, d)
	}
	return y
}

// PhaseAt folds the phase axis at (k, x, d), summing radian offsets.
func (m KnobMods) PhaseAt(k int, x, d float64) float64 {
	y := 0.0
	for _, r := range m.Phase {
		y += r.Value(k, x, d)
	}
	return y
}

// Package testutil holds small signal generators and slice assertions
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// Sine renders amplitude*sin(2*pi*freqHz*t) for length samples.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise renders seeded uniform white noise in [-amplitude, amplitude].
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse renders a unit impulse at pos, silence elsewhere.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

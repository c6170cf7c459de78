package fm

import "math"

// tlValues maps a DX7 output level (0-99) to its Total Level value.
// Adapted from "FM Theory and Applications: By Musicians for
// Musicians" by John Chowning and David Bristow, page 166.
var tlValues = [100]uint8{
	127, 122, 118, 114, 110, 107, 104, 102, 100, 98, 96, 94, 92, 90, 88, 86,
	85, 84, 82, 81, 79, 78, 77, 76, 75, 74, 73, 72, 71, 70, 69, 68, 67, 66,
	65, 64, 63, 62, 61, 60, 59, 58, 57, 56, 55, 54, 53, 52, 51, 50, 49, 48,
	47, 46, 45, 44, 43, 42, 41, 40, 39, 38, 37, 36, 35, 34, 33, 32, 31, 30,
	29, 28, 27, 26, 25, 24, 23, 22, 21, 20, 19, 18, 17, 16, 15, 14, 13, 12,
	11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
}

// ModIndexFromLevel converts a normalized level in [0, 1] to a
// modulation index the way the DX7 does: map to an output level of
// 0-99, look up the Total Level, and compute pi * 2^(33/16 - TL/8).
// The result is bounded in [0, 13).
func ModIndexFromLevel(normalized float64) float64 {
	input := normalized
	if input < 0 {
		input = 0
	} else if input > 1 {
		input = 1
	}

	outputLevel := int(math.Round(input * 99))
	totalLevel := float64(tlValues[outputLevel])

	x := 33.0/16.0 - totalLevel/8.0
	return math.Pi * math.Pow(2, x)
}

// DXToModIndex converts a raw DX7 level knob value (0-99) to a
// modulation index.
func DXToModIndex(dxLevel float64) float64 {
	return ModIndexFromLevel(dxLevel / 99)
}

// DexedDetune converts a detune knob position (-7 to 7) into a
// frequency offset in Hz for the given base frequency.
func DexedDetune(baseFrequency float64, tune int) float64 {
	v := float64(tune) / 7
	return v * math.Log2(baseFrequency) / math.Pi
}

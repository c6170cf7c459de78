//go:build !fastmath

package contour

import "math"

// mathPower2 computes 2^x. The fastmath build tag swaps in an
// approximated variant for the per-sample cutoff loop.
func mathPower2(x float64) float64 {
	return math.Pow(2, x)
}

// mathLog2 computes log2(x).
func mathLog2(x float64) float64 {
	return math.Log2(x)
}

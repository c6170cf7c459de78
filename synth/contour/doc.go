// Package contour derives time-varying filter trajectories and applies
// sampled contours to signals: the onset/decay/hold/release stage model
// (ODR) with its guarantee that a complete envelope always fits the
// note, the per-sample cutoff "wah" mask, bandpass rolloff and
// resonance gains, and the slicing/interpolation helpers the renderer
// uses to window stem-level contours onto individual notes.
package contour

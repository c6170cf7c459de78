// Package spectrum models a timbre as parallel partial descriptors
// (amplitude, frequency ratio, phase) and provides the named spectral
// shapes used by the renderer: octave stacks, square/sawtooth/triangle
// overtone series, undertone series, and colored noise, plus the phasor
// merge that collapses partials sharing a frequency ratio.
package spectrum

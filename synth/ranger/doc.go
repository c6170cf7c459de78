// Package ranger provides the modulation shape library and the knob
// machinery that drives it: named bounded contours (Shape), the three
// free parameters steering each one (Knob), ranged macros resolving to
// concrete knobs (KnobMacro/Motion), per-axis folding (KnobMods), the
// legacy weighted mixer, the long-form lifespan envelopes, and the
// organic amplitude generator.
//
// Every amplitude shape honors one contract: output stays in [0, 1]
// over the whole (k, x, d) domain and is never identically 0 or 1.
// Rangers are pure; all randomness enters through explicitly passed
// generators at macro-resolution time.
package ranger

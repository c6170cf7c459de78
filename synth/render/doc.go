// Package render is the composition root of the engine. It walks a
// melody note by note, renders each note additively from a spectrum or
// through an FM operator tree, folds in contour envelopes, modulation
// knobs and bandpass gains, writes delay replicas at their causal
// offsets, and concatenates the note buffers at cumulative cue
// positions. Renderable trees reduce to a single buffer by rendering
// stems in parallel and mixing the results.
package render

// Package fm renders notes by phase modulation over a tree of
// operators: a carrier at the root and nested modulators (or
// self-feedback taps) below it. Alongside the renderer it provides the
// spectral bookkeeping that keeps generated patches under Nyquist:
// Carson's-rule bandwidth estimates, headroom queries, serial chain
// growth, and pruning. DX7-style level-to-index conversion and
// velocity/pitch attenuation helpers tie patch energy to note context.
package fm

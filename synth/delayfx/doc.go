// Package delayfx turns configured delay ranges into concrete echo
// parameters and computes per-echo amplitude: geometric decay per
// replica, with strict causality (an echo is silent before its arrival
// sample). A small physically-motivated surface model provides
// round-trip time and phase for room reflections; it stands alone and
// is not part of the replica path.
package delayfx

// Package core provides the shared rendering configuration and the small
// numeric helpers used across the synthesis engine.
//
// A RenderConfig is an immutable value passed explicitly into every
// rendering call; there is no process-wide state, so multiple sample
// rates and playback rates can coexist in one program.
package core

package core

// Ratio is a musical duration as a fraction of one cycle.
type Ratio struct {
	Num int
	Den int
}

// Cycles returns the ratio as a cycle count.
func (r Ratio) Cycles() float64 {
	return float64(r.Num) / float64(r.Den)
}

// SamplesPerCycle returns the number of samples spanning one cycle at the
// configured playback rate.
func (cfg RenderConfig) SamplesPerCycle() int {
	return int(cfg.SampleRate / cfg.CPS)
}

// SamplesOfCycles returns the number of samples spanning k cycles.
func (cfg RenderConfig) SamplesOfCycles(k float64) int {
	return int(float64(cfg.SamplesPerCycle()) * k)
}

// SamplesOfDur returns the number of samples spanning dur seconds of
// playback time (cycle-relative seconds, scaled by CPS).
func (cfg RenderConfig) SamplesOfDur(dur float64) int {
	return int((cfg.SampleRate / cfg.CPS) * dur)
}

// SamplesOfMilliseconds returns the number of samples spanning ms
// milliseconds of playback time.
func (cfg RenderConfig) SamplesOfMilliseconds(ms float64) int {
	return cfg.SamplesOfDur(ms / 1000)
}

// CyclesFromSamples converts a sample count back to cycles.
func (cfg RenderConfig) CyclesFromSamples(n int) float64 {
	return float64(n) / float64(cfg.SamplesPerCycle())
}

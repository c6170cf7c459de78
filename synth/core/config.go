package core

// RenderConfig defines the immutable context for one rendering pass.
//
// CPS is the playback rate in cycles per second: note durations are
// expressed in cycles, so one cycle spans SampleRate/CPS samples.
// MinRegister and MaxRegister bound the usable pitch range in octave
// units (frequency = 2^register).
type RenderConfig struct {
	SampleRate  float64
	CPS         float64
	MinRegister int
	MaxRegister int
}

// Option mutates a RenderConfig.
type Option func(*RenderConfig)

// DefaultRenderConfig returns the defaults used throughout the engine.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		SampleRate:  48000,
		CPS:         1,
		MinRegister: 5,
		MaxRegister: 15,
	}
}

// WithSampleRate sets the output sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *RenderConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithCPS sets the playback rate in cycles per second.
func WithCPS(cps float64) Option {
	return func(cfg *RenderConfig) {
		if cps > 0 {
			cfg.CPS = cps
		}
	}
}

// WithRegisterRange sets the usable register bounds.
func WithRegisterRange(min, max int) Option {
	return func(cfg *RenderConfig) {
		if min < max {
			cfg.MinRegister = min
			cfg.MaxRegister = max
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) RenderConfig {
	cfg := DefaultRenderConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Nyquist returns half the sample rate.
func (cfg RenderConfig) Nyquist() float64 {
	return cfg.SampleRate / 2
}

// MinFreq returns the lowest renderable frequency, 2^MinRegister Hz.
func (cfg RenderConfig) MinFreq() float64 {
	return float64(int(1) << uint(cfg.MinRegister))
}

// RegisterSpan returns the width of the register range in octaves.
func (cfg RenderConfig) RegisterSpan() float64 {
	return float64(cfg.MaxRegister - cfg.MinRegister)
}

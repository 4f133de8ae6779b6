package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by constructors that reject a ProcessorConfig.
var ErrInvalidConfig = errors.New("invalid processor config")

// ProcessorConfig defines common DSP processing settings.
//
// BlockSize is the number of audio samples per control period, so the
// control rate is SampleRate / BlockSize.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns sensible defaults for control-signal processing.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  64,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && !math.IsInf(sampleRate, 0) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the number of samples per control period.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithConfig replaces the whole configuration, e.g. with one discovered from
// a host. Unlike the other options it is not filtered; constructors
// validate the result.
func WithConfig(c ProcessorConfig) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		*cfg = c
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// ControlRate returns the control-period rate in Hz.
func (c ProcessorConfig) ControlRate() float64 {
	if c.BlockSize <= 0 {
		return c.SampleRate
	}
	return c.SampleRate / float64(c.BlockSize)
}

// Validate reports whether the config can drive a processor.
func (c ProcessorConfig) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive and finite: %f", ErrInvalidConfig, c.SampleRate)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block size must be > 0: %d", ErrInvalidConfig, c.BlockSize)
	}
	return nil
}

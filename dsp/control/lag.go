package control

import (
	"fmt"

	"github.com/cwbudde/algo-control/dsp/core"
)

// Lag is a one-pole smoothing filter parameterised by a 60 dB lag time,
// the time the output needs to settle within 0.1% of a step target.
//
// The coefficient is recomputed only when the lag time changes. On the
// block path the coefficient is ramped linearly from the old to the new
// value across the active samples so parameter moves do not step.
type Lag struct {
	cfg core.ProcessorConfig

	y1      float64 // last smoothed output
	lagTime float64 // cached lag time in seconds
	b1      float64 // cached coefficient for lagTime
}

// NewLag creates a Lag whose output starts at initial.
func NewLag(initial float64, opts ...core.ProcessorOption) (*Lag, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("lag: %w", err)
	}

	l := &Lag{cfg: cfg}
	l.Reset(initial)
	return l, nil
}

// Reset re-seeds the output and forgets the cached coefficient.
func (l *Lag) Reset(initial float64) {
	l.y1 = initial
	l.lagTime = neverSet
	l.b1 = 0
}

// Config returns the processor configuration.
func (l *Lag) Config() core.ProcessorConfig { return l.cfg }

// Value returns the last persisted output.
func (l *Lag) Value() float64 { return l.y1 }

// LagTime returns the cached lag time, or -1 before the first call.
func (l *Lag) LagTime() float64 { return l.lagTime }

// Coefficient returns the cached coefficient.
func (l *Lag) Coefficient() float64 { return l.b1 }

// Next smooths one control-rate value.
//
// When lagTime differs from the cached one the new coefficient is cached
// and applied, but the output of that call is not persisted: the following
// call smooths from the previously persisted value again.
func (l *Lag) Next(in, lagTime float64) float64 {
	if lagTime == l.lagTime {
		l.y1 = in + l.b1*(l.y1-in)
		return l.y1
	}

	l.b1 = LagCoefficient(lagTime, l.cfg.ControlRate())
	l.lagTime = lagTime
	return in + l.b1*(l.y1-in)
}

// Process smooths src into dst at the sample rate. Only the active span is
// computed; the rest of dst is zeroed. src must be at least as long as dst
// and may alias it.
func (l *Lag) Process(dst, src []float64, lagTime float64, span core.Span) {
	start, end := span.Bounds(len(dst))
	core.ZeroOutside(dst, start, end)
	if start == end {
		return
	}

	y1 := l.y1
	b1 := l.b1

	if lagTime == l.lagTime {
		for i := start; i < end; i++ {
			x := src[i]
			y1 = x + b1*(y1-x)
			dst[i] = y1
		}
		l.y1 = y1
		return
	}

	target := LagCoefficient(lagTime, l.cfg.SampleRate)
	slope := (target - b1) / float64(end-start)
	for i := start; i < end; i++ {
		b1 += slope
		x := src[i]
		y1 = x + b1*(y1-x)
		dst[i] = y1
	}

	l.y1 = y1
	l.b1 = target
	l.lagTime = lagTime
}

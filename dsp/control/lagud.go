package control

import (
	"fmt"

	"github.com/cwbudde/algo-control/dsp/core"
)

// LagUD is a Lag with separate lag times for rising and falling input.
//
// The rising coefficient is used while the input is above the previous
// output, the falling one otherwise. Both coefficients are recomputed
// together whenever either lag time changes.
type LagUD struct {
	cfg core.ProcessorConfig

	y1   float64
	lagU float64
	lagD float64
	b1u  float64
	b1d  float64
}

// NewLagUD creates a LagUD whose output starts at initial.
func NewLagUD(initial float64, opts ...core.ProcessorOption) (*LagUD, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("lagud: %w", err)
	}

	l := &LagUD{cfg: cfg}
	l.Reset(initial)
	return l, nil
}

// Reset re-seeds the output and forgets both cached coefficients.
func (l *LagUD) Reset(initial float64) {
	l.y1 = initial
	l.lagU = neverSet
	l.lagD = neverSet
	l.b1u = 0
	l.b1d = 0
}

// Config returns the processor configuration.
func (l *LagUD) Config() core.ProcessorConfig { return l.cfg }

// Value returns the last persisted output.
func (l *LagUD) Value() float64 { return l.y1 }

// LagTimes returns the cached rising and falling lag times.
func (l *LagUD) LagTimes() (up, down float64) { return l.lagU, l.lagD }

// Coefficients returns the cached rising and falling coefficients.
func (l *LagUD) Coefficients() (up, down float64) { return l.b1u, l.b1d }

// Next smooths one control-rate value. Coefficients are recomputed
// immediately when either lag time changes.
func (l *LagUD) Next(in, up, down float64) float64 {
	if up != l.lagU || down != l.lagD {
		rate := l.cfg.ControlRate()
		l.b1u = LagCoefficient(up, rate)
		l.b1d = LagCoefficient(down, rate)
		l.lagU = up
		l.lagD = down
	}

	if in > l.y1 {
		l.y1 = in + l.b1u*(l.y1-in)
	} else {
		l.y1 = in + l.b1d*(l.y1-in)
	}
	return l.y1
}

// Process smooths src into dst at the sample rate. Only the active span is
// computed; the rest of dst is zeroed. The final output is flushed to zero
// when it is denormal, infinite or NaN before it is persisted.
func (l *LagUD) Process(dst, src []float64, up, down float64, span core.Span) {
	start, end := span.Bounds(len(dst))
	core.ZeroOutside(dst, start, end)
	if start == end {
		return
	}

	y1 := l.y1
	b1u := l.b1u
	b1d := l.b1d

	if up == l.lagU && down == l.lagD {
		for i := start; i < end; i++ {
			x := src[i]
			if x > y1 {
				y1 = x + b1u*(y1-x)
			} else {
				y1 = x + b1d*(y1-x)
			}
			dst[i] = y1
		}
		l.y1 = core.ZapGremlins(y1)
		return
	}

	count := float64(end - start)
	l.b1u = LagCoefficient(up, l.cfg.SampleRate)
	l.b1d = LagCoefficient(down, l.cfg.SampleRate)
	l.lagU = up
	l.lagD = down
	slopeU := (l.b1u - b1u) / count
	slopeD := (l.b1d - b1d) / count

	for i := start; i < end; i++ {
		x := src[i]
		b1u += slopeU
		b1d += slopeD
		if x > y1 {
			y1 = x + b1u*(y1-x)
		} else {
			y1 = x + b1d*(y1-x)
		}
		dst[i] = y1
	}
	l.y1 = core.ZapGremlins(y1)
}

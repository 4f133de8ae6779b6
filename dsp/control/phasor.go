package control

import (
	"fmt"

	"github.com/cwbudde/algo-control/dsp/core"
)

// Phasor is a linear ramp that advances by rate per sample and wraps into
// [start, end). When the trigger input crosses from non-positive to
// positive the ramp jumps to a reset position.
//
// Since end is the wrap point it is never output. A ramp of frequency f
// between start and end needs rate = (end - start) * f / sampleRate.
//
// On the block paths the reset is placed at the estimated zero crossing
// between two trigger samples and the ramp is advanced by the remaining
// fraction of that sample. Block paths also wrap the level before
// emitting it, so a reset outside [start, end) is output wrapped.
type Phasor struct {
	cfg core.ProcessorConfig

	level float64 // current ramp value
	prev  float64 // previous trigger input
}

// NewPhasor creates a Phasor starting at zero.
func NewPhasor(opts ...core.ProcessorOption) (*Phasor, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("phasor: %w", err)
	}

	p := &Phasor{cfg: cfg}
	p.Reset()
	return p, nil
}

// Reset returns the ramp and trigger history to zero.
func (p *Phasor) Reset() {
	p.level = 0
	p.prev = 0
}

// Config returns the processor configuration.
func (p *Phasor) Config() core.ProcessorConfig { return p.cfg }

// Level returns the value the next call starts from.
func (p *Phasor) Level() float64 { return p.level }

// Next processes one control period with scalar trigger and rate. A
// trigger edge resets the ramp to resetPos without sub-sample correction.
func (p *Phasor) Next(trig, rate, start, end, resetPos float64) float64 {
	level := p.level
	if p.prev <= 0 && trig > 0 {
		level = resetPos
	}

	level = core.Wrap(level, start, end)
	out := level

	p.level = level + rate
	p.prev = trig
	return out
}

// Process runs the ramp over the active span with a per-sample trigger and
// a constant rate, zeroing the rest of dst. trig must be at least as long
// as dst.
func (p *Phasor) Process(dst, trig []float64, rate, start, end, resetPos float64, span core.Span) {
	first, last := span.Bounds(len(dst))
	core.ZeroOutside(dst, first, last)

	level := p.level
	prev := p.prev
	for i := first; i < last; i++ {
		cur := trig[i]
		if prev <= 0 && cur > 0 {
			level = resetPos + crossingFraction(prev, cur)*rate
		}
		level = core.Wrap(level, start, end)
		dst[i] = level
		level = core.Wrap(level+rate, start, end)
		prev = cur
	}
	p.level = level
	p.prev = prev
}

// ProcessRates is Process with a per-sample rate. trig and rates must be
// at least as long as dst.
func (p *Phasor) ProcessRates(dst, trig, rates []float64, start, end, resetPos float64, span core.Span) {
	first, last := span.Bounds(len(dst))
	core.ZeroOutside(dst, first, last)

	level := p.level
	prev := p.prev
	for i := first; i < last; i++ {
		cur := trig[i]
		rate := rates[i]
		if prev <= 0 && cur > 0 {
			level = resetPos + crossingFraction(prev, cur)*rate
		}
		level = core.Wrap(level, start, end)
		dst[i] = level
		level = core.Wrap(level+rate, start, end)
		prev = cur
	}
	p.level = level
	p.prev = prev
}

// crossingFraction estimates where between prev and cur the trigger
// crossed zero, as 1 - prev/(cur-prev).
func crossingFraction(prev, cur float64) float64 {
	return 1 - prev/(cur-prev)
}

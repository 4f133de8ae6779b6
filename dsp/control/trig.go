package control

import (
	"fmt"

	"github.com/cwbudde/algo-control/dsp/core"
)

// Trig emits a hold pulse when its input crosses from non-positive to
// positive. The pulse carries the input value at the crossing and lasts
// for a programmable duration; edges arriving while a pulse is held are
// ignored.
type Trig struct {
	cfg core.ProcessorConfig

	prev    float64 // previous raw input
	counter int64   // remaining samples of the active pulse
	level   float64 // captured pulse level
}

// NewTrig creates a Trig and runs one control-rate step with input and
// duration so the initial output is defined.
func NewTrig(input, duration float64, opts ...core.ProcessorOption) (*Trig, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("trig: %w", err)
	}

	t := &Trig{cfg: cfg}
	t.Reset(input, duration)
	return t, nil
}

// Reset clears the pulse state and runs one control-rate step.
func (t *Trig) Reset(input, duration float64) {
	t.prev = 0
	t.counter = 0
	t.level = 0
	t.Next(input, duration)
}

// Config returns the processor configuration.
func (t *Trig) Config() core.ProcessorConfig { return t.cfg }

// Holding reports whether a pulse is active.
func (t *Trig) Holding() bool { return t.counter > 0 }

// Remaining returns the number of samples left in the active pulse.
func (t *Trig) Remaining() int64 { return t.counter }

// Level returns the level captured by the most recent edge.
func (t *Trig) Level() float64 { return t.level }

// Next processes one control-rate value; duration is in seconds.
func (t *Trig) Next(in, duration float64) float64 {
	return t.step(in, duration, t.cfg.ControlRate())
}

// Process runs the trigger over the active span of src at the sample rate
// and zeroes the rest of dst. src must be at least as long as dst.
func (t *Trig) Process(dst, src []float64, duration float64, span core.Span) {
	start, end := span.Bounds(len(dst))
	core.ZeroOutside(dst, start, end)

	rate := t.cfg.SampleRate
	for i := start; i < end; i++ {
		dst[i] = t.step(src[i], duration, rate)
	}
}

func (t *Trig) step(in, duration, rate float64) float64 {
	var out float64
	if t.counter > 0 {
		t.counter--
		if t.counter > 0 {
			out = t.level
		}
	} else if in > 0 && t.prev <= 0 {
		t.counter = HoldSamples(duration, rate)
		t.level = in
		out = in
	}
	t.prev = in
	return out
}

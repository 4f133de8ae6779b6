// Package control provides stateful control-signal recurrences for
// real-time processing graphs.
//
// Included processors:
//   - Lag: One-pole smoothing driven by a 60 dB convergence time.
//   - LagUD: Lag with independent rising and falling times.
//   - Trig: Fixed-level hold pulse on a rising zero crossing.
//   - Phasor: Ramp wrapped into [start, end) with sub-sample accurate reset.
//
// Every processor has two call shapes. Next consumes one value per control
// period and runs at the control rate (SampleRate / BlockSize). Process
// consumes a full block and runs at the sample rate; it computes only the
// active [core.Span] of the block and writes exact zero elsewhere without
// advancing state. An instance is driven by one call shape for its lifetime.
//
// Processing never allocates and never fails. Instances are single-threaded
// and not safe for concurrent use.
package control

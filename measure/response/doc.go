// Package response measures the time and frequency behavior of control
// processors.
//
// It provides:
//
//   - SettleIndex: first sample after which a response stays within a
//     tolerance of its target
//   - PredictSettle: samples a one-pole coefficient needs to decay to a
//     given fraction
//   - Step: scaled step stimulus
//   - PeakFrequency: frequency of the strongest non-DC FFT bin
//
// # Usage
//
//	resp := make([]float64, len(stim))
//	lag.Process(resp, stim, 0.1, core.FullSpan)
//	idx := response.SettleIndex(resp, 1, 0.001)
package response

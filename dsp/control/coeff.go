package control

import "math"

// log001 is ln(0.001), the -60 dB decay target.
const log001 = -6.907755278982137

// neverSet marks a cached time constant that has not been supplied yet.
const neverSet = -1.0

// LagCoefficient returns the one-pole coefficient that decays by 60 dB
// within lagTime seconds at the given rate. A lag time of exactly zero
// yields zero (instantaneous tracking).
func LagCoefficient(lagTime, rate float64) float64 {
	if lagTime == 0 {
		return 0
	}
	return math.Exp(log001 / (lagTime * rate))
}

// HoldSamples returns the pulse length in samples for duration seconds at
// the given rate, rounded half up and never shorter than one sample.
func HoldSamples(duration, rate float64) int64 {
	n := duration*rate + 0.5
	if !(n >= 1) {
		return 1
	}
	if n >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}

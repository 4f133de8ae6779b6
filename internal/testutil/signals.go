package testutil

import "math/rand"

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Step generates a signal that is from before index at and to from then on.
func Step(from, to float64, at, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		if i < at {
			out[i] = from
		} else {
			out[i] = to
		}
	}
	return out
}

// Pulses generates a signal that is value at each listed index and zero elsewhere.
// Indices outside the signal are ignored.
func Pulses(value float64, length int, at ...int) []float64 {
	out := make([]float64, length)
	for _, i := range at {
		if i >= 0 && i < length {
			out[i] = value
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

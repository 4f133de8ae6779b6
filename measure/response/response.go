package response

import (
	"errors"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by analysis functions.
var (
	ErrEmptySignal       = errors.New("response: signal is empty")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive and finite")
	ErrNoPeak            = errors.New("response: no non-DC energy")
)

// SettleIndex returns the first index from which every sample of resp lies
// within tol of target, or -1 if the last sample is still outside.
func SettleIndex(resp []float64, target, tol float64) int {
	idx := -1
	for i := len(resp) - 1; i >= 0; i-- {
		if math.Abs(resp[i]-target) > tol {
			break
		}
		idx = i
	}
	return idx
}

// PredictSettle returns the number of samples after which a one-pole
// recurrence with coefficient b1 has decayed to fraction of its initial
// error. A zero coefficient settles in zero samples.
func PredictSettle(b1, fraction float64) float64 {
	if b1 <= 0 {
		return 0
	}
	if b1 >= 1 || fraction <= 0 {
		return math.Inf(1)
	}
	return math.Log(fraction) / math.Log(b1)
}

// Step returns a signal that is zero before index at and amplitude from
// then on.
func Step(amplitude float64, at, length int) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	if at < 0 {
		at = 0
	}
	for i := at; i < length; i++ {
		out[i] = amplitude
	}
	return out
}

// PeakFrequency returns the frequency in Hz of the strongest non-DC bin in
// the spectrum of signal. The signal is mean-removed, normalised by its
// length and zero-padded to the next power of two.
func PeakFrequency(signal []float64, sampleRate float64) (float64, error) {
	if len(signal) == 0 {
		return 0, ErrEmptySignal
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, ErrInvalidSampleRate
	}

	fftSize := nextPowerOf2(len(signal))
	if fftSize < 2 {
		fftSize = 2
	}

	mean := 0.0
	for _, v := range signal {
		mean += v
	}
	mean /= float64(len(signal))

	centered := make([]float64, len(signal))
	for i, v := range signal {
		centered[i] = v - mean
	}
	vecmath.ScaleBlock(centered, centered, 1/float64(len(signal)))

	inData := make([]complex128, fftSize)
	for i, v := range centered {
		inData[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, err
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return 0, err
	}

	binCount := fftSize/2 + 1
	re := make([]float64, binCount)
	im := make([]float64, binCount)
	for k := 0; k < binCount; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	power := make([]float64, binCount)
	vecmath.Power(power, re, im)

	peak := 1
	for k := 2; k < binCount; k++ {
		if power[k] > power[peak] {
			peak = k
		}
	}
	if power[peak] <= 0 {
		return 0, ErrNoPeak
	}

	return float64(peak) * sampleRate / float64(fftSize), nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

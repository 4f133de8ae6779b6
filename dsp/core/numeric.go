package core

import "math"

const defaultEpsilon = 1e-12

// Gremlin bounds used by ZapGremlins.
const (
	gremlinFloor   = 1e-15
	gremlinCeiling = 1e15
)

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// ZapGremlins returns x when 1e-15 < |x| < 1e15 and exact zero otherwise.
// Denormals fail the lower bound, infinities the upper, NaN both.
func ZapGremlins(x float64) float64 {
	ax := math.Abs(x)
	if ax > gremlinFloor && ax < gremlinCeiling {
		return x
	}
	return 0
}

// Wrap maps value into the half-open range [lo, hi).
//
// A single range width of overshoot is folded back without a division.
// A zero-width range collapses to lo.
func Wrap(value, lo, hi float64) float64 {
	var width float64
	switch {
	case value >= hi:
		width = hi - lo
		value -= width
		if value < hi {
			return value
		}
	case value < lo:
		width = hi - lo
		value += width
		if value >= lo {
			return value
		}
	default:
		return value
	}

	if hi == lo {
		return lo
	}
	return value - width*math.Floor((value-lo)/width)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

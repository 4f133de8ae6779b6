package core

// Span marks the active sub-range of a processing block.
//
// Offset is the number of leading samples before an instance starts
// (delayed onset), Early the number of trailing samples after it stops.
// The active range of an n-sample block is [Offset, n-Early).
type Span struct {
	Offset int
	Early  int
}

// FullSpan activates the whole block.
var FullSpan = Span{}

// Bounds returns the active range of an n-sample block clamped into [0, n].
// The range may be empty.
func (s Span) Bounds(n int) (start, end int) {
	if n <= 0 {
		return 0, 0
	}

	start = s.Offset
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}

	end = n
	if s.Early > 0 {
		end = n - s.Early
	}
	if end < start {
		end = start
	}
	return start, end
}

// Len returns the number of active samples in an n-sample block.
func (s Span) Len(n int) int {
	start, end := s.Bounds(n)
	return end - start
}

// ZeroOutside clears buf outside [start, end).
func ZeroOutside(buf []float64, start, end int) {
	Zero(buf[:start])
	Zero(buf[end:])
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

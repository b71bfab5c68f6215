package core

// Resize returns a slice of length n, reusing buf's backing array when its
// capacity allows. The contents are unspecified; callers that need cleared
// memory use ZeroResize.
func Resize(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) < n {
		return make([]float64, n)
	}

	return buf[:n]
}

// ZeroResize returns a zeroed slice of length n, reusing buf like Resize.
// This is the per-iteration scratch path for reconstruction traces.
func ZeroResize(buf []float64, n int) []float64 {
	out := Resize(buf, n)
	Zero(out)

	return out
}

// Zero clears buf in place.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Package spectrum extracts real-valued views (magnitude, power, phase)
// from complex spectrum or correlation bins.
//
// The package intentionally does not implement FFT itself. It operates on
// complex bins produced by external FFT backends; magnitude and power
// extraction run on SIMD-accelerated vector kernels with pooled scratch
// buffers, so in steady state only the output slice is allocated.
package spectrum

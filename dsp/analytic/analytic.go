// Package analytic computes the analytic signal of a real-valued trace via
// the frequency-domain Hilbert transform, plus envelope and instantaneous
// phase views derived from it.
//
// The analytic signal z = x + j*H{x} has magnitude equal to the signal
// envelope and argument equal to the instantaneous phase, which is what a
// quadrature (complex) matched-filter model correlates against.
package analytic

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mkalkowski/algo-clean/dsp/core"
	"github.com/mkalkowski/algo-clean/dsp/spectrum"
)

// Errors returned by analytic-signal functions.
var ErrEmptyInput = errors.New("analytic: empty input")

// Transform returns the analytic signal of x.
//
// The transform zeroes the negative-frequency half of the spectrum and
// doubles the positive half (DC and Nyquist bins are kept as-is). Inputs
// whose length is not a power of two are zero-padded to the next power of
// two before the transform and truncated afterwards, which introduces a
// small edge approximation near the end of the trace.
func Transform(x []float64) ([]complex128, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	fftSize := core.NextPowerOf2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("analytic: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	freq := make([]complex128, fftSize)

	err = plan.Forward(freq, in)
	if err != nil {
		return nil, fmt.Errorf("analytic: forward FFT failed: %w", err)
	}

	// One-sided spectrum: double positive frequencies, zero negative ones.
	half := fftSize / 2
	for k := 1; k < half; k++ {
		freq[k] *= 2
	}

	for k := half + 1; k < fftSize; k++ {
		freq[k] = 0
	}

	z := make([]complex128, fftSize)

	err = plan.Inverse(z, freq)
	if err != nil {
		return nil, fmt.Errorf("analytic: inverse FFT failed: %w", err)
	}

	return z[:n], nil
}

// Envelope returns |z| for the analytic signal of x, the signal envelope.
func Envelope(x []float64) ([]float64, error) {
	z, err := Transform(x)
	if err != nil {
		return nil, err
	}

	return spectrum.Magnitude(z), nil
}

// InstantaneousPhase returns arg(z) for the analytic signal of x in radians.
func InstantaneousPhase(x []float64) ([]float64, error) {
	z, err := Transform(x)
	if err != nil {
		return nil, err
	}

	return spectrum.Phase(z), nil
}

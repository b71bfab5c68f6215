// Package matched computes matched-filter responses: the cross-correlation
// of a measured trace against a reference kernel across all candidate time
// shifts, evaluated in the frequency domain.
//
// Two signal models are supported. Correlate works on real traces and
// yields a real-valued response (exposed as complex values with zero
// imaginary part), so the response sign carries the polarity. For a
// quadrature model, CorrelateAnalytic accepts analytic (complex) inputs and
// yields a complex response whose argument encodes the phase offset of the
// best-matching kernel copy.
package matched

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mkalkowski/algo-clean/dsp/core"
	"github.com/mkalkowski/algo-clean/dsp/spectrum"
)

// Errors returned by correlation functions.
var (
	ErrEmptySignal   = errors.New("matched: empty signal")
	ErrEmptyKernel   = errors.New("matched: empty kernel")
	ErrKernelTooLong = errors.New("matched: kernel longer than signal")
)

// Response holds the complex matched-filter response across candidate
// shifts. Index k corresponds to the kernel placed k samples into the
// signal; only non-negative shifts with full kernel overlap are kept, so
// the response length is len(signal) - len(kernel) + 1.
type Response struct {
	values []complex128
	mags   []float64
}

// Len returns the number of candidate shifts.
func (r *Response) Len() int {
	return len(r.values)
}

// At returns the complex response value at shift k.
func (r *Response) At(k int) complex128 {
	return r.values[k]
}

// Magnitudes returns the per-shift response magnitudes.
// The slice is owned by the Response and must be treated as read-only.
func (r *Response) Magnitudes() []float64 {
	return r.mags
}

// Finite reports whether every response value is finite.
func (r *Response) Finite() bool {
	for _, m := range r.mags {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return false
		}
	}

	return true
}

// Peak is the dominant point of a matched-filter response.
type Peak struct {
	Shift     int        // candidate shift in samples
	Value     complex128 // complex response at the peak
	Magnitude float64    // |Value|
	Phase     float64    // arg(Value) in radians
}

// Peak returns the response point with the largest magnitude.
// Ties are broken by the earliest shift, which keeps extraction
// deterministic for repeated runs on identical input.
func (r *Response) Peak() Peak {
	best := 0
	bestMag := r.mags[0]

	for k, m := range r.mags {
		if m > bestMag {
			best = k
			bestMag = m
		}
	}

	v := r.values[best]

	return Peak{
		Shift:     best,
		Value:     v,
		Magnitude: bestMag,
		Phase:     cmplx.Phase(v),
	}
}

// Correlate computes the matched-filter response of a real signal against a
// real kernel: R[k] = sum_j signal[j+k] * kernel[j].
func Correlate(sig, kernel []float64) (*Response, error) {
	if len(sig) == 0 {
		return nil, ErrEmptySignal
	}

	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	zs := make([]complex128, len(sig))
	for i, v := range sig {
		zs[i] = complex(v, 0)
	}

	zk := make([]complex128, len(kernel))
	for i, v := range kernel {
		zk[i] = complex(v, 0)
	}

	return CorrelateAnalytic(zs, zk)
}

// CorrelateAnalytic computes the matched-filter response of a complex
// (analytic) signal against a complex kernel:
// R[k] = sum_j signal[j+k] * conj(kernel[j]).
func CorrelateAnalytic(sig, kernel []complex128) (*Response, error) {
	n := len(sig)
	m := len(kernel)

	if n == 0 {
		return nil, ErrEmptySignal
	}

	if m == 0 {
		return nil, ErrEmptyKernel
	}

	if m > n {
		return nil, ErrKernelTooLong
	}

	fftSize := core.NextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("matched: failed to create FFT plan: %w", err)
	}

	sigPadded := make([]complex128, fftSize)
	copy(sigPadded, sig)

	kernelPadded := make([]complex128, fftSize)
	copy(kernelPadded, kernel)

	sigFreq := make([]complex128, fftSize)
	kernelFreq := make([]complex128, fftSize)

	err = plan.Forward(sigFreq, sigPadded)
	if err != nil {
		return nil, fmt.Errorf("matched: forward FFT failed: %w", err)
	}

	err = plan.Forward(kernelFreq, kernelPadded)
	if err != nil {
		return nil, fmt.Errorf("matched: forward FFT failed: %w", err)
	}

	// Spectral product with the conjugate kernel spectrum.
	prod := make([]complex128, fftSize)
	for i := range prod {
		prod[i] = sigFreq[i] * cmplx.Conj(kernelFreq[i])
	}

	out := make([]complex128, fftSize)

	err = plan.Inverse(out, prod)
	if err != nil {
		return nil, fmt.Errorf("matched: inverse FFT failed: %w", err)
	}

	// Keep only shifts where the kernel fully overlaps the signal.
	values := out[:n-m+1]
	mags := make([]float64, len(values))
	spectrum.MagnitudeInto(mags, values)

	return &Response{values: values, mags: mags}, nil
}

// Energy returns the total energy of a real kernel (sum of squares).
func Energy(kernel []float64) float64 {
	var sum float64
	for _, v := range kernel {
		sum += v * v
	}

	return sum
}

// EnergyComplex returns the total energy of a complex kernel (sum of |z|^2).
func EnergyComplex(kernel []complex128) float64 {
	var sum float64
	for _, p := range spectrum.Power(kernel) {
		sum += p
	}

	return sum
}

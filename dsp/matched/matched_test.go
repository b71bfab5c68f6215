package matched

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/mkalkowski/algo-clean/internal/testutil"
)

func TestCorrelatePeakAtPlacement(t *testing.T) {
	kernel := testutil.GaussianKernel(17, 8, 2)

	trace := make([]float64, 128)
	testutil.PlaceKernel(trace, kernel, 40, 3)

	resp, err := Correlate(trace, kernel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Len() != 128-17+1 {
		t.Fatalf("Len = %d, expected %d", resp.Len(), 128-17+1)
	}

	pk := resp.Peak()
	if pk.Shift != 40 {
		t.Errorf("peak shift = %d, expected 40", pk.Shift)
	}

	// At the peak, R = amplitude * kernel energy.
	want := 3 * Energy(kernel)
	if math.Abs(pk.Magnitude-want) > 1e-9*want {
		t.Errorf("peak magnitude = %v, expected %v", pk.Magnitude, want)
	}

	if real(pk.Value) <= 0 {
		t.Errorf("positive placement should give a positive response, got %v", pk.Value)
	}
}

func TestCorrelateNegativePolarity(t *testing.T) {
	kernel := testutil.GaussianKernel(17, 8, 2)

	trace := make([]float64, 96)
	testutil.PlaceKernel(trace, kernel, 20, -2)

	resp, err := Correlate(trace, kernel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pk := resp.Peak()
	if pk.Shift != 20 {
		t.Errorf("peak shift = %d, expected 20", pk.Shift)
	}

	if real(pk.Value) >= 0 {
		t.Errorf("inverted placement should give a negative response, got %v", pk.Value)
	}
}

func TestCorrelateAgainstDirectSum(t *testing.T) {
	sig := testutil.DeterministicNoise(3, 1, 64)
	kernel := testutil.DeterministicNoise(5, 1, 9)

	resp, err := Correlate(sig, kernel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for k := 0; k < resp.Len(); k++ {
		var want float64
		for j := range kernel {
			want += sig[j+k] * kernel[j]
		}

		if math.Abs(real(resp.At(k))-want) > 1e-9 {
			t.Fatalf("shift %d: FFT correlation %v, direct sum %v", k, real(resp.At(k)), want)
		}

		if math.Abs(imag(resp.At(k))) > 1e-9 {
			t.Fatalf("shift %d: real correlation has imaginary part %v", k, imag(resp.At(k)))
		}
	}
}

func TestCorrelateAnalyticPhase(t *testing.T) {
	// A kernel correlated against a rotated copy of itself recovers the
	// rotation angle as the peak phase.
	kernel := make([]complex128, 16)
	for i := range kernel {
		kernel[i] = complex(math.Exp(-float64(i-8)*float64(i-8)/8), 0)
	}

	rot := cmplx.Exp(complex(0, math.Pi/3))

	sig := make([]complex128, 64)
	for i, v := range kernel {
		sig[24+i] = v * rot
	}

	resp, err := CorrelateAnalytic(sig, kernel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pk := resp.Peak()
	if pk.Shift != 24 {
		t.Errorf("peak shift = %d, expected 24", pk.Shift)
	}

	if math.Abs(pk.Phase-math.Pi/3) > 1e-9 {
		t.Errorf("peak phase = %v, expected %v", pk.Phase, math.Pi/3)
	}
}

func TestPeakTieBreak(t *testing.T) {
	// Equal magnitudes resolve to the earliest shift.
	resp := &Response{
		values: []complex128{1, -2, 2, 1},
		mags:   []float64{1, 2, 2, 1},
	}

	if pk := resp.Peak(); pk.Shift != 1 {
		t.Errorf("peak shift = %d, expected earliest tied shift 1", pk.Shift)
	}
}

func TestFinite(t *testing.T) {
	resp := &Response{
		values: []complex128{1, 2},
		mags:   []float64{1, 2},
	}

	if !resp.Finite() {
		t.Error("expected finite response")
	}

	resp.mags[1] = math.NaN()
	if resp.Finite() {
		t.Error("expected NaN to be detected")
	}

	resp.mags[1] = math.Inf(1)
	if resp.Finite() {
		t.Error("expected Inf to be detected")
	}
}

func TestCorrelateErrors(t *testing.T) {
	_, err := Correlate(nil, []float64{1})
	if !errors.Is(err, ErrEmptySignal) {
		t.Errorf("expected ErrEmptySignal, got %v", err)
	}

	_, err = Correlate([]float64{1}, nil)
	if !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}

	_, err = Correlate([]float64{1, 2}, []float64{1, 2, 3})
	if !errors.Is(err, ErrKernelTooLong) {
		t.Errorf("expected ErrKernelTooLong, got %v", err)
	}
}

func TestEnergy(t *testing.T) {
	if got := Energy([]float64{3, 4}); got != 25 {
		t.Errorf("Energy = %v, expected 25", got)
	}

	if got := Energy(nil); got != 0 {
		t.Errorf("Energy(nil) = %v, expected 0", got)
	}

	if got := EnergyComplex([]complex128{3 + 4i, 1}); math.Abs(got-26) > 1e-12 {
		t.Errorf("EnergyComplex = %v, expected 26", got)
	}
}

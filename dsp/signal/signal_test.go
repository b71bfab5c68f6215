package signal

import (
	"errors"
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	s, err := New([]float64{1, 2, 3}, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Len() != 3 {
		t.Errorf("Len = %d, expected 3", s.Len())
	}

	if s.Rate() != 1000 {
		t.Errorf("Rate = %v, expected 1000", s.Rate())
	}

	if got := s.Duration(); math.Abs(got-0.003) > 1e-15 {
		t.Errorf("Duration = %v, expected 0.003", got)
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(nil, 1000)
	if !errors.Is(err, ErrEmptySignal) {
		t.Errorf("expected ErrEmptySignal, got %v", err)
	}

	_, err = New([]float64{1}, 0)
	if !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("expected ErrInvalidSampleRate, got %v", err)
	}

	_, err = New([]float64{1}, -44100)
	if !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("expected ErrInvalidSampleRate, got %v", err)
	}
}

func TestClone(t *testing.T) {
	s, _ := New([]float64{1, 2, 3}, 100)
	c := s.Clone()

	c.Samples()[0] = 99
	if s.Samples()[0] != 1 {
		t.Error("mutating a clone must not affect the original")
	}

	if c.Rate() != s.Rate() {
		t.Errorf("clone rate = %v, expected %v", c.Rate(), s.Rate())
	}
}

func TestEnergyAndRMS(t *testing.T) {
	s, _ := New([]float64{3, 4}, 100)

	if got := s.Energy(); got != 25 {
		t.Errorf("Energy = %v, expected 25", got)
	}

	want := math.Sqrt(12.5)
	if got := s.RMS(); math.Abs(got-want) > 1e-12 {
		t.Errorf("RMS = %v, expected %v", got, want)
	}
}

func TestMaxAbs(t *testing.T) {
	s, _ := New([]float64{0.5, -2, 1}, 100)

	if got := s.MaxAbs(); got != 2 {
		t.Errorf("MaxAbs = %v, expected 2", got)
	}
}

func TestIsFinite(t *testing.T) {
	s, _ := New([]float64{1, 2}, 100)
	if !s.IsFinite() {
		t.Error("expected finite signal")
	}

	s, _ = New([]float64{1, math.NaN()}, 100)
	if s.IsFinite() {
		t.Error("expected NaN to be detected")
	}

	s, _ = New([]float64{math.Inf(1)}, 100)
	if s.IsFinite() {
		t.Error("expected Inf to be detected")
	}
}

func TestAdd(t *testing.T) {
	a, _ := New([]float64{1, 2}, 100)
	b, _ := New([]float64{3, 4}, 100)

	err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Samples()[0] != 4 || a.Samples()[1] != 6 {
		t.Errorf("unexpected sum: %v", a.Samples())
	}

	// Length mismatch
	c, _ := New([]float64{1}, 100)
	if err := a.Add(c); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}

	// Rate mismatch
	d, _ := New([]float64{1, 1}, 200)
	if err := a.Add(d); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("expected ErrInvalidSampleRate, got %v", err)
	}
}

func TestScale(t *testing.T) {
	s, _ := New([]float64{1, -2}, 100)
	s.Scale(0.5)

	if s.Samples()[0] != 0.5 || s.Samples()[1] != -1 {
		t.Errorf("unexpected scaled samples: %v", s.Samples())
	}
}

func TestGeneratorSine(t *testing.T) {
	g := NewGenerator()

	s, err := g.Sine(1000, 0.5, 480)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Len() != 480 {
		t.Errorf("Len = %d, expected 480", s.Len())
	}

	if s.Rate() != 48000 {
		t.Errorf("Rate = %v, expected default 48000", s.Rate())
	}

	if got := s.MaxAbs(); got > 0.5+1e-12 {
		t.Errorf("peak %v exceeds amplitude", got)
	}

	_, err = g.Sine(1000, 1, 0)
	if !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
}

func TestGeneratorWhiteNoise(t *testing.T) {
	g := NewGeneratorWithOptions(nil, WithSeed(7))

	a, err := g.WhiteNoise(0.25, 128)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, _ := NewGeneratorWithOptions(nil, WithSeed(7)).WhiteNoise(0.25, 128)

	for i := range a.Samples() {
		if a.Samples()[i] != b.Samples()[i] {
			t.Fatal("same seed must produce identical noise")
		}
	}

	_, err = g.WhiteNoise(-1, 16)
	if !errors.Is(err, ErrInvalidAmplitude) {
		t.Errorf("expected ErrInvalidAmplitude, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{1, -4, 2}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(out[1]+1) > 1e-12 {
		t.Errorf("expected peak normalized to -1, got %v", out[1])
	}

	// All-zero input stays zero.
	out, _ = Normalize([]float64{0, 0}, 1)
	if out[0] != 0 || out[1] != 0 {
		t.Errorf("expected zeros, got %v", out)
	}

	_, err = Normalize(nil, 1)
	if !errors.Is(err, ErrEmptySignal) {
		t.Errorf("expected ErrEmptySignal, got %v", err)
	}
}

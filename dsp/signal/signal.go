// Package signal provides the sampled-trace type shared by all analysis
// packages, deterministic test-signal generation, and parametrized template
// waveform models (Gaussian pulse, Gaussian-windowed tone burst).
//
// A Signal couples samples with their sample rate so that length and rate
// mismatches between a measured trace and a reference template are caught at
// the API boundary instead of silently corrupting an analysis.
package signal

import (
	"errors"
	"math"
)

// Errors returned by signal construction and generation.
var (
	ErrEmptySignal       = errors.New("signal: empty sample slice")
	ErrInvalidSampleRate = errors.New("signal: sample rate must be positive")
	ErrInvalidLength     = errors.New("signal: length must be positive")
	ErrInvalidAmplitude  = errors.New("signal: amplitude must be >= 0")
)

// Signal is an immutable-length sampled trace with an associated sample rate.
// The sample values themselves may be mutated by an owner (e.g. a residual
// buffer); length and rate are fixed for the lifetime of the value.
type Signal struct {
	samples []float64
	rate    float64
}

// New wraps samples and a sample rate into a Signal.
// The slice is not copied; the caller hands over ownership.
func New(samples []float64, rate float64) (Signal, error) {
	if len(samples) == 0 {
		return Signal{}, ErrEmptySignal
	}

	if rate <= 0 {
		return Signal{}, ErrInvalidSampleRate
	}

	return Signal{samples: samples, rate: rate}, nil
}

// Samples returns the backing sample slice.
func (s Signal) Samples() []float64 {
	return s.samples
}

// Rate returns the sample rate in Hz.
func (s Signal) Rate() float64 {
	return s.rate
}

// Len returns the number of samples.
func (s Signal) Len() int {
	return len(s.samples)
}

// Duration returns the trace duration in seconds.
func (s Signal) Duration() float64 {
	if s.rate <= 0 {
		return 0
	}

	return float64(len(s.samples)) / s.rate
}

// Clone returns a deep copy of the signal.
func (s Signal) Clone() Signal {
	out := make([]float64, len(s.samples))
	copy(out, s.samples)

	return Signal{samples: out, rate: s.rate}
}

// Energy returns the sum of squared samples.
func (s Signal) Energy() float64 {
	var sum float64
	for _, v := range s.samples {
		sum += v * v
	}

	return sum
}

// RMS returns the root-mean-square value of the samples.
func (s Signal) RMS() float64 {
	if len(s.samples) == 0 {
		return 0
	}

	return math.Sqrt(s.Energy() / float64(len(s.samples)))
}

// MaxAbs returns the peak absolute sample value.
func (s Signal) MaxAbs() float64 {
	peak := 0.0

	for _, v := range s.samples {
		av := math.Abs(v)
		if av > peak {
			peak = av
		}
	}

	return peak
}

// IsFinite reports whether all samples are finite (no NaN or Inf).
func (s Signal) IsFinite() bool {
	for _, v := range s.samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// Add accumulates other into s in place.
// Both signals must share length and rate.
func (s Signal) Add(other Signal) error {
	if len(other.samples) != len(s.samples) {
		return ErrInvalidLength
	}

	if other.rate != s.rate {
		return ErrInvalidSampleRate
	}

	for i, v := range other.samples {
		s.samples[i] += v
	}

	return nil
}

// Scale multiplies all samples by factor in place.
func (s Signal) Scale(factor float64) {
	for i := range s.samples {
		s.samples[i] *= factor
	}
}

package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// GaussianKernel generates a Gaussian envelope with its peak at sample
// center and a standard deviation of sigma samples.
func GaussianKernel(length int, center, sigma float64) []float64 {
	out := make([]float64, length)

	for i := range out {
		arg := (float64(i) - center) / sigma
		out[i] = math.Exp(-0.5 * arg * arg)
	}

	return out
}

// PlaceKernel accumulates amplitude*kernel into trace starting at offset.
// Samples falling past the end of the trace are dropped.
func PlaceKernel(trace, kernel []float64, offset int, amplitude float64) {
	for i, v := range kernel {
		j := offset + i
		if j < 0 || j >= len(trace) {
			continue
		}

		trace[j] += amplitude * v
	}
}

package signal

import (
	"errors"
	"math"

	"github.com/mkalkowski/algo-clean/dsp/window"
)

// Errors returned by template waveform models.
var (
	ErrInvalidFrequency = errors.New("signal: carrier frequency must be positive and below Nyquist")
	ErrInvalidCycles    = errors.New("signal: burst cycle count must be positive")
	ErrInvalidWidth     = errors.New("signal: envelope width must be positive")
	ErrInvalidDelay     = errors.New("signal: delay places the template before the trace start")
)

// GaussianPulse renders a Gaussian envelope pulse.
//
// The pulse carries no oscillation; phase acts as a polarity rotation
// (the rendered amplitude is scaled by cos(phase), so phase pi inverts the
// pulse). At zero delay the envelope peak sits at Center seconds; the delay
// parameter shifts the whole envelope later in time.
type GaussianPulse struct {
	SampleRate float64 // sample rate in Hz
	Length     int     // rendered trace length in samples
	Center     float64 // envelope peak position at zero delay, in seconds
	Sigma      float64 // envelope standard deviation, in seconds
}

// Validate checks that the GaussianPulse parameters are valid.
func (p *GaussianPulse) Validate() error {
	if p.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if p.Length <= 0 {
		return ErrInvalidLength
	}

	if p.Sigma <= 0 {
		return ErrInvalidWidth
	}

	return nil
}

// Waveform renders the pulse with its envelope peak at Center+delay seconds.
func (p *GaussianPulse) Waveform(delay, amplitude, phase float64) (Signal, error) {
	err := p.Validate()
	if err != nil {
		return Signal{}, err
	}

	center := p.Center + delay
	if center < 0 {
		return Signal{}, ErrInvalidDelay
	}

	scale := amplitude * math.Cos(phase)
	out := make([]float64, p.Length)

	for i := range out {
		t := float64(i) / p.SampleRate
		arg := (t - center) / p.Sigma
		out[i] = scale * math.Exp(-0.5*arg*arg)
	}

	return New(out, p.SampleRate)
}

// ToneBurst renders a windowed tone burst: a sinusoidal carrier under a
// short envelope window, the usual excitation model for ultrasonic traces.
//
// At zero delay the burst starts at Onset seconds; the delay parameter
// shifts the burst later. Phase offsets the carrier relative to the burst
// start. The rendered trace has Length samples; a burst running past the
// end is clipped.
type ToneBurst struct {
	SampleRate float64     // sample rate in Hz
	Length     int         // rendered trace length in samples
	Frequency  float64     // carrier frequency in Hz
	Cycles     float64     // burst duration in carrier cycles
	Window     window.Type // envelope window; zero value selects Gaussian
	Alpha      float64     // window shape parameter; 0 uses the window default
	Onset      float64     // burst start at zero delay, in seconds
}

// Validate checks that the ToneBurst parameters are valid.
func (b *ToneBurst) Validate() error {
	if b.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if b.Length <= 0 {
		return ErrInvalidLength
	}

	if b.Frequency <= 0 || b.Frequency >= b.SampleRate/2 {
		return ErrInvalidFrequency
	}

	if b.Cycles <= 0 {
		return ErrInvalidCycles
	}

	return nil
}

// burstSamples returns the burst envelope length in samples.
func (b *ToneBurst) burstSamples() int {
	n := int(math.Round(b.Cycles / b.Frequency * b.SampleRate))
	if n < 1 {
		n = 1
	}

	if n > b.Length {
		n = b.Length
	}

	return n
}

// Waveform renders the burst starting at Onset+delay seconds.
func (b *ToneBurst) Waveform(delay, amplitude, phase float64) (Signal, error) {
	err := b.Validate()
	if err != nil {
		return Signal{}, err
	}

	start := int(math.Round((b.Onset + delay) * b.SampleRate))
	if start < 0 {
		return Signal{}, ErrInvalidDelay
	}

	winType := b.Window
	if winType == window.Type(0) {
		winType = window.TypeGauss
	}

	var winOpts []window.Option
	if b.Alpha > 0 {
		winOpts = append(winOpts, window.WithAlpha(b.Alpha))
	}

	n := b.burstSamples()
	env := window.Generate(winType, n, winOpts...)

	carrier := make([]float64, n)
	step := 2 * math.Pi * b.Frequency / b.SampleRate

	for i := range carrier {
		carrier[i] = amplitude * math.Cos(step*float64(i)+phase)
	}

	burst, err := window.ApplyCoefficients(carrier, env)
	if err != nil {
		return Signal{}, err
	}

	out := make([]float64, b.Length)
	for i, v := range burst {
		j := start + i
		if j >= b.Length {
			break
		}

		out[j] = v
	}

	return New(out, b.SampleRate)
}

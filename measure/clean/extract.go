package clean

import (
	"fmt"
	"math"

	"github.com/mkalkowski/algo-clean/dsp/analytic"
	"github.com/mkalkowski/algo-clean/dsp/core"
	"github.com/mkalkowski/algo-clean/dsp/matched"
	"github.com/mkalkowski/algo-clean/dsp/signal"
)

// Extractor runs CLEAN extraction with a fixed configuration.
type Extractor struct {
	cfg Config
}

// NewExtractor creates an extractor with the given configuration.
// The configuration is validated on the first Extract call.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Config returns the extractor configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Extract is a one-shot extraction with the given configuration.
func Extract(sig signal.Signal, gen TemplateGenerator, cfg Config) (Result, error) {
	return NewExtractor(cfg).Extract(sig, gen)
}

// Extract decomposes sig into template components and a final residual.
//
// The caller's signal is never mutated; the loop operates on an owned copy
// that becomes the returned residual. All validation happens before the
// first subtraction, so a failed call leaves no partial result.
func (e *Extractor) Extract(sig signal.Signal, gen TemplateGenerator) (Result, error) {
	if sig.Len() == 0 || sig.Rate() <= 0 {
		return Result{}, ErrInvalidInput
	}

	if !sig.IsFinite() {
		return Result{}, fmt.Errorf("%w: non-finite samples", ErrInvalidInput)
	}

	if gen == nil {
		return Result{}, fmt.Errorf("%w: nil template generator", ErrInvalidInput)
	}

	err := e.cfg.Validate()
	if err != nil {
		return Result{}, err
	}

	// The normalized basis: template at zero shift, unit amplitude, zero phase.
	basis, err := gen.Waveform(0, 1, 0)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrTemplateGeneration, err)
	}

	err = validateTemplate(sig, basis)
	if err != nil {
		return Result{}, err
	}

	kernel := basis.Samples()

	norm := matched.Energy(kernel)
	if norm <= 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return Result{}, fmt.Errorf("%w: template has no energy", ErrInvalidTemplate)
	}

	var zKernel []complex128

	if e.cfg.PhaseModel == PhaseModelAnalytic {
		zKernel, err = analytic.Transform(kernel)
		if err != nil {
			return Result{}, err
		}

		norm = matched.EnergyComplex(zKernel)
	}

	residual := sig.Clone()
	resSamples := residual.Samples()
	origEnergy := residual.Energy()

	res := Result{Residual: residual}
	stop := StopMaxIterations

	var (
		trace  []float64
		maxAmp float64
	)

	for iter := 0; iter < e.cfg.MaxIterations; iter++ {
		resp, err := e.correlate(resSamples, kernel, zKernel)
		if err != nil {
			return Result{}, err
		}

		if !resp.Finite() {
			stop = StopDegenerate
			break
		}

		pk := resp.Peak()

		amp := pk.Magnitude / norm
		if amp <= 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			stop = StopDegenerate
			break
		}

		if amp < e.cfg.NoiseFloor {
			stop = StopNoiseFloor
			break
		}

		if e.cfg.AmplitudeRatio > 0 && len(res.Components) > 0 && amp < e.cfg.AmplitudeRatio*maxAmp {
			stop = StopAmplitudeRatio
			break
		}

		phase := 0.0

		switch e.cfg.PhaseModel {
		case PhaseModelAnalytic:
			phase = pk.Phase
		default:
			if real(pk.Value) < 0 {
				phase = math.Pi
			}
		}

		shape, err := gen.Waveform(0, amp, phase)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrTemplateGeneration, err)
		}

		err = validateTemplate(sig, shape)
		if err != nil {
			return Result{}, err
		}

		// Reconstruct the component at the winning shift and subtract the
		// gain-scaled trace from the residual in place.
		trace = core.ZeroResize(trace, len(resSamples))

		for i, v := range shape.Samples() {
			j := pk.Shift + i
			if j >= len(trace) {
				break
			}

			trace[j] = e.cfg.Gain * v
		}

		for i := range resSamples {
			resSamples[i] = core.FlushDenormals(resSamples[i] - trace[i])
		}

		res.Components = append(res.Components, Component{
			Index:     iter,
			Shift:     pk.Shift,
			Time:      float64(pk.Shift) / sig.Rate(),
			Amplitude: amp,
			Phase:     phase,
		})

		if e.cfg.KeepTraces {
			res.Traces = append(res.Traces, append([]float64(nil), trace...))
		}

		if amp > maxAmp {
			maxAmp = amp
		}

		en := residual.Energy()
		if en == 0 || (e.cfg.EnergyThreshold > 0 && en <= e.cfg.EnergyThreshold*origEnergy) {
			stop = StopEnergy
			break
		}
	}

	res.Iterations = len(res.Components)
	res.Stop = stop

	return res, nil
}

// correlate computes the matched-filter response of the residual against
// the template basis under the configured phase model.
func (e *Extractor) correlate(residual, kernel []float64, zKernel []complex128) (*matched.Response, error) {
	if e.cfg.PhaseModel == PhaseModelAnalytic {
		zRes, err := analytic.Transform(residual)
		if err != nil {
			return nil, err
		}

		return matched.CorrelateAnalytic(zRes, zKernel)
	}

	return matched.Correlate(residual, kernel)
}

// validateTemplate checks a rendered template against the analyzed signal.
func validateTemplate(sig, tpl signal.Signal) error {
	if tpl.Len() == 0 {
		return fmt.Errorf("%w: empty rendering", ErrInvalidTemplate)
	}

	if tpl.Len() > sig.Len() {
		return fmt.Errorf("%w: template longer than signal (%d > %d)", ErrInvalidTemplate, tpl.Len(), sig.Len())
	}

	if tpl.Rate() != sig.Rate() {
		return fmt.Errorf("%w: sample rate mismatch (%g != %g)", ErrInvalidTemplate, tpl.Rate(), sig.Rate())
	}

	if !tpl.IsFinite() {
		return fmt.Errorf("%w: non-finite samples", ErrInvalidTemplate)
	}

	return nil
}

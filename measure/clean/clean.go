package clean

import (
	"errors"
	"fmt"
	"math"

	"github.com/mkalkowski/algo-clean/dsp/signal"
)

// Errors returned by the extraction loop.
var (
	ErrInvalidInput       = errors.New("clean: invalid input signal")
	ErrInvalidConfig      = errors.New("clean: invalid configuration")
	ErrInvalidTemplate    = errors.New("clean: invalid template")
	ErrTemplateGeneration = errors.New("clean: template generation failed")
	ErrNoTraces           = errors.New("clean: result does not carry component traces")
)

// TemplateGenerator produces the reference waveform the extraction loop
// correlates against and subtracts.
//
// Waveform renders the template delayed by delay seconds, scaled by
// amplitude, and phase-rotated by phase radians, sampled at the analyzed
// trace's rate. The rendering must be non-empty and no longer than the
// analyzed trace. Implementations are treated as immutable and are reused
// across iterations. The loop itself only requests zero-delay renderings
// (time shifts are applied in whole samples for exact subtraction); the
// delay parameter serves resynthesis and plotting consumers.
type TemplateGenerator interface {
	Waveform(delay, amplitude, phase float64) (signal.Signal, error)
}

// PhaseModel selects how component phase is estimated.
type PhaseModel int

const (
	// PhaseModelReal correlates real traces directly. Phase is restricted
	// to 0 or pi, taken from the sign of the matched response.
	PhaseModelReal PhaseModel = iota

	// PhaseModelAnalytic correlates analytic (Hilbert-transformed) traces.
	// Phase is the argument of the complex matched response in [-pi, pi).
	PhaseModelAnalytic
)

// String returns the phase model name.
func (m PhaseModel) String() string {
	switch m {
	case PhaseModelReal:
		return "real"
	case PhaseModelAnalytic:
		return "analytic"
	default:
		return "unknown"
	}
}

// StopReason records which criterion terminated the extraction loop.
type StopReason int

const (
	// StopMaxIterations indicates the iteration cap was reached.
	StopMaxIterations StopReason = iota

	// StopEnergy indicates the residual energy fell below the threshold.
	StopEnergy

	// StopNoiseFloor indicates the best matched amplitude fell below the
	// noise floor; no further component is distinguishable from noise.
	StopNoiseFloor

	// StopAmplitudeRatio indicates the best matched amplitude fell below
	// the configured fraction of the strongest extracted amplitude.
	StopAmplitudeRatio

	// StopDegenerate indicates a numeric degeneracy (all-zero residual,
	// NaN or Inf in the matched response), treated as convergence.
	StopDegenerate
)

// String returns the stop reason name.
func (r StopReason) String() string {
	switch r {
	case StopMaxIterations:
		return "max iterations"
	case StopEnergy:
		return "residual energy"
	case StopNoiseFloor:
		return "noise floor"
	case StopAmplitudeRatio:
		return "amplitude ratio"
	case StopDegenerate:
		return "degenerate residual"
	default:
		return "unknown"
	}
}

// Config holds extraction loop parameters.
type Config struct {
	// MaxIterations caps the number of extracted components. Always
	// enforced, which guarantees termination.
	MaxIterations int

	// EnergyThreshold stops the loop once the residual energy falls to
	// this fraction of the original signal energy. 0 disables the check
	// (an exactly zero residual still stops the loop).
	EnergyThreshold float64

	// NoiseFloor stops the loop before extracting a component whose
	// matched amplitude falls below this absolute level.
	NoiseFloor float64

	// AmplitudeRatio stops the loop before extracting a component whose
	// matched amplitude falls below this fraction of the strongest
	// amplitude extracted so far. 0 disables the check. The classic
	// CLEAN formulation uses 0.4.
	AmplitudeRatio float64

	// Gain is the CLEAN loop gain in (0, 1]: the fraction of each
	// reconstructed component subtracted per iteration. Values below 1
	// trade convergence speed for stability against template mismatch.
	Gain float64

	// PhaseModel selects real or analytic phase estimation.
	PhaseModel PhaseModel

	// KeepTraces retains each component's gain-scaled reconstruction
	// trace in the result, enabling exact resynthesis and plotting.
	KeepTraces bool
}

// DefaultConfig returns sensible defaults for echo extraction.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 32,
		Gain:          1,
		PhaseModel:    PhaseModelReal,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be > 0", ErrInvalidConfig)
	}

	if c.EnergyThreshold < 0 || math.IsNaN(c.EnergyThreshold) {
		return fmt.Errorf("%w: energy threshold must be >= 0", ErrInvalidConfig)
	}

	if c.NoiseFloor < 0 || math.IsNaN(c.NoiseFloor) {
		return fmt.Errorf("%w: noise floor must be >= 0", ErrInvalidConfig)
	}

	if c.AmplitudeRatio < 0 || c.AmplitudeRatio >= 1 || math.IsNaN(c.AmplitudeRatio) {
		return fmt.Errorf("%w: amplitude ratio must be in [0, 1)", ErrInvalidConfig)
	}

	if c.Gain <= 0 || c.Gain > 1 || math.IsNaN(c.Gain) {
		return fmt.Errorf("%w: gain must be in (0, 1]", ErrInvalidConfig)
	}

	if c.PhaseModel != PhaseModelReal && c.PhaseModel != PhaseModelAnalytic {
		return fmt.Errorf("%w: unknown phase model", ErrInvalidConfig)
	}

	return nil
}

// Component is one extracted wave packet. Components are created in
// extraction order (descending matched-filter dominance) and never mutated
// afterwards. The field order below is stable; plotting and serialization
// consumers may rely on it.
type Component struct {
	Index     int     // extraction iteration, starting at 0
	Shift     int     // arrival offset of the template copy in samples
	Time      float64 // arrival time in seconds (Shift over the sample rate)
	Amplitude float64 // matched amplitude relative to the unit template
	Phase     float64 // phase in radians; 0 or pi under PhaseModelReal
}

// Result is the outcome of one extraction run.
type Result struct {
	Components []Component   // extracted components, dominant first
	Residual   signal.Signal // final residual trace
	Iterations int           // completed iterations (= len(Components))
	Stop       StopReason    // criterion that ended the loop
	Traces     [][]float64   // per-component gain-scaled traces (Config.KeepTraces)
}

// Synthesize reconstructs the trace explained by the extraction: the sum of
// all component traces plus the final residual. With a loop gain of 1 and
// exact traces this reproduces the original input to floating-point
// tolerance. Requires Config.KeepTraces.
func (r Result) Synthesize() (signal.Signal, error) {
	if len(r.Traces) != len(r.Components) {
		return signal.Signal{}, ErrNoTraces
	}

	out := make([]float64, r.Residual.Len())
	copy(out, r.Residual.Samples())

	for _, trace := range r.Traces {
		for i, v := range trace {
			if i >= len(out) {
				break
			}

			out[i] += v
		}
	}

	return signal.New(out, r.Residual.Rate())
}

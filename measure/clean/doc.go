// Package clean extracts overlapping wave-packet components from a measured
// trace using the CLEAN algorithm: a greedy, iterative matched-filter
// decomposition that explains the trace as a sparse sum of shifted, scaled,
// phase-rotated copies of a known reference waveform.
//
// Each iteration correlates the current residual against the template,
// selects the shift with the strongest matched response, estimates that
// component's arrival time, amplitude, and phase, and subtracts a loop-gain
// fraction of the reconstructed component from the residual. The loop stops
// on an iteration cap, a residual-energy floor, a matched-amplitude noise
// floor, or a relative amplitude cut-off, whichever triggers first.
//
// The spectral estimation approach follows Gough (1994), "A fast spectral
// estimation algorithm based on the FFT", as applied to ultrasonic echo
// decomposition by Holmes, Drinkwater and Wilcox (2005).
//
// # Usage
//
//	tpl := &signal.GaussianPulse{SampleRate: 25e6, Length: 64, Center: 1e-6, Sigma: 0.2e-6}
//	result, err := clean.Extract(trace, tpl, clean.DefaultConfig())
//	for _, c := range result.Components {
//		fmt.Printf("t=%.3gs a=%.3g phi=%.3g\n", c.Time, c.Amplitude, c.Phase)
//	}
package clean

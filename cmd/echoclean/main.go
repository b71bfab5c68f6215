// Command echoclean decomposes an ultrasonic echo trace into template
// components using iterative matched-filter extraction.
//
// Usage:
//
//	echoclean [flags] [trace-file]
//
// The trace file holds one sample per line (whitespace-separated floats are
// accepted). Without a file, -demo generates a synthetic two-echo trace.
//
// Examples:
//
//	echoclean -demo
//	echoclean -rate 25e6 -template burst -freq 5e6 -cycles 5 trace.txt
//	echoclean -phase analytic -max-iter 10 -ratio 0.4 trace.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/mkalkowski/algo-clean/dsp/signal"
	"github.com/mkalkowski/algo-clean/measure/clean"
)

func main() {
	rate := flag.Float64("rate", 1e6, "sample rate in Hz")
	template := flag.String("template", "gauss", "template shape: gauss or burst")
	tplLen := flag.Int("template-len", 64, "template length in samples")
	center := flag.Float64("center", 0, "gauss: envelope peak time in seconds (0 = template midpoint)")
	sigma := flag.Float64("sigma", 0, "gauss: envelope width in seconds (0 = an eighth of the template)")
	freq := flag.Float64("freq", 1e5, "burst: carrier frequency in Hz")
	cycles := flag.Float64("cycles", 5, "burst: carrier cycles in the burst")
	alpha := flag.Float64("alpha", 2.5, "burst: Gaussian window alpha")
	maxIter := flag.Int("max-iter", 32, "maximum components to extract")
	gain := flag.Float64("gain", 1, "loop gain in (0, 1]")
	noiseFloor := flag.Float64("noise-floor", 0, "stop below this matched amplitude")
	ratio := flag.Float64("ratio", 0, "stop below this fraction of the strongest amplitude")
	energy := flag.Float64("energy", 0, "stop below this fraction of the original energy")
	phase := flag.String("phase", "real", "phase model: real or analytic")
	demo := flag.Bool("demo", false, "analyze a synthetic two-echo trace instead of a file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: echoclean [flags] [trace-file]\n\n")
		fmt.Fprintf(os.Stderr, "Decomposes an echo trace into matched template components.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  echoclean -demo\n")
		fmt.Fprintf(os.Stderr, "  echoclean -rate 25e6 -template burst -freq 5e6 trace.txt\n")
	}
	flag.Parse()

	cfg := clean.DefaultConfig()
	cfg.MaxIterations = *maxIter
	cfg.Gain = *gain
	cfg.NoiseFloor = *noiseFloor
	cfg.AmplitudeRatio = *ratio
	cfg.EnergyThreshold = *energy

	switch *phase {
	case "real":
		cfg.PhaseModel = clean.PhaseModelReal
	case "analytic":
		cfg.PhaseModel = clean.PhaseModelAnalytic
	default:
		fmt.Fprintf(os.Stderr, "error: unknown phase model %q\n", *phase)
		os.Exit(1)
	}

	gen, err := buildTemplate(*template, *rate, *tplLen, *center, *sigma, *freq, *cycles, *alpha)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	sig, err := loadTrace(flag.Args(), *rate, *demo, gen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	res, err := clean.Extract(sig, gen, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printResult(res)
}

func buildTemplate(shape string, rate float64, length int, center, sigma, freq, cycles, alpha float64) (clean.TemplateGenerator, error) {
	switch shape {
	case "gauss":
		if center == 0 {
			center = float64(length) / (2 * rate)
		}
		if sigma == 0 {
			sigma = float64(length) / (8 * rate)
		}
		return &signal.GaussianPulse{SampleRate: rate, Length: length, Center: center, Sigma: sigma}, nil
	case "burst":
		return &signal.ToneBurst{SampleRate: rate, Length: length, Frequency: freq, Cycles: cycles, Alpha: alpha}, nil
	default:
		return nil, fmt.Errorf("unknown template shape %q", shape)
	}
}

func loadTrace(args []string, rate float64, demo bool, gen clean.TemplateGenerator) (signal.Signal, error) {
	if demo {
		return demoTrace(rate, gen)
	}

	if len(args) != 1 {
		return signal.Signal{}, fmt.Errorf("expected one trace file (or -demo)")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return signal.Signal{}, err
	}
	defer f.Close()

	samples, err := readSamples(f)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%s: %w", args[0], err)
	}

	return signal.New(samples, rate)
}

func readSamples(r io.Reader) ([]float64, error) {
	var samples []float64

	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	for sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", len(samples)+1, err)
		}

		samples = append(samples, v)
	}

	return samples, sc.Err()
}

// demoTrace places two template copies, amplitudes 5 and 2, into a trace of
// eight template lengths.
func demoTrace(rate float64, gen clean.TemplateGenerator) (signal.Signal, error) {
	basis, err := gen.Waveform(0, 1, 0)
	if err != nil {
		return signal.Signal{}, err
	}

	m := basis.Len()
	samples := make([]float64, 8*m)

	for i, v := range basis.Samples() {
		samples[m/2+i] += 5 * v
		samples[4*m+i] += 2 * v
	}

	return signal.New(samples, rate)
}

func printResult(res clean.Result) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tShift\tTime [s]\tAmplitude\tPhase [rad]\n")
	fmt.Fprintf(tw, "-\t-----\t--------\t---------\t-----------\n")

	for _, c := range res.Components {
		fmt.Fprintf(tw, "%d\t%d\t%.6g\t%.6g\t%.4f\n", c.Index, c.Shift, c.Time, c.Amplitude, c.Phase)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		return
	}

	fmt.Printf("\ncomponents: %d\nstop: %s\nresidual RMS: %.6g\n",
		len(res.Components), res.Stop, res.Residual.RMS())
}

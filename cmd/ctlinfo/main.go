// Command ctlinfo prints coefficient, settle and hold tables for the
// control processors.
//
// Usage:
//
//	ctlinfo [flags] [seconds ...]
//
// In lag mode each argument is a 60 dB lag time, in trig mode a pulse
// duration. Without arguments a default set of times is used.
//
// Examples:
//
//	ctlinfo 0.01 0.1
//	ctlinfo -sr 44100 -block 10 0.05
//	ctlinfo -mode trig 0.001 0.02
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-control/dsp/control"
	"github.com/cwbudde/algo-control/dsp/core"
	"github.com/cwbudde/algo-control/measure/response"
)

var defaultTimes = []float64{0, 0.001, 0.01, 0.1, 1}

// settleTolerance is the -60 dB band a lag time is defined by.
var settleTolerance = core.DBToLinear(-60)

func main() {
	sampleRate := flag.Float64("sr", 48000, "sample rate in Hz")
	blockSize := flag.Int("block", 64, "samples per control period")
	mode := flag.String("mode", "lag", "table to print: lag or trig")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ctlinfo [flags] [seconds ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints lag coefficients and settle times, or trigger hold lengths.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ctlinfo 0.01 0.1\n")
		fmt.Fprintf(os.Stderr, "  ctlinfo -sr 44100 -block 10 0.05\n")
		fmt.Fprintf(os.Stderr, "  ctlinfo -mode trig 0.001 0.02\n")
	}
	flag.Parse()

	cfg := core.ProcessorConfig{SampleRate: *sampleRate, BlockSize: *blockSize}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	times, err := parseTimes(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	switch strings.ToLower(strings.TrimSpace(*mode)) {
	case "lag":
		printLag(cfg, times)
	case "trig":
		printTrig(cfg, times)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown mode %q (use lag or trig)\n", *mode)
		os.Exit(1)
	}
}

func parseTimes(args []string) ([]float64, error) {
	if len(args) == 0 {
		return defaultTimes, nil
	}

	times := make([]float64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q: %w", arg, err)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("time must be >= 0 and finite: %q", arg)
		}
		times = append(times, v)
	}
	return times, nil
}

// measureLag drives a Lag with a unit step block by block at the sample
// rate and returns the measured settle length and the residual after
// lagTime seconds.
func measureLag(cfg core.ProcessorConfig, lagTime float64) (settle int, residualDB float64, err error) {
	lag, err := control.NewLag(0, core.WithConfig(cfg))
	if err != nil {
		return 0, 0, err
	}

	block := cfg.BlockSize
	target := int(math.Ceil(lagTime * cfg.SampleRate))
	blocks := target/block + 2

	// A silent first block lets the coefficient ramp in without moving the output.
	stim := response.Step(1, block, (blocks+1)*block)
	resp := make([]float64, len(stim))
	for off := 0; off < len(stim); off += block {
		lag.Process(resp[off:off+block], stim[off:off+block], lagTime, core.FullSpan)
	}

	step := resp[block:]
	settle = response.SettleIndex(step, 1, settleTolerance) + 1
	idx := target - 1
	if idx < 0 {
		idx = 0
	}
	residualDB = core.LinearToDB(math.Abs(1 - step[idx]))
	return settle, residualDB, nil
}

func printLag(cfg core.ProcessorConfig, times []float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Lag [s]\tb1 (audio)\tb1 (control)\tPredicted [smp]\tMeasured [smp]\tResidual [dB]\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "-------\t----------\t------------\t---------------\t--------------\t-------------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, t := range times {
		b1a := control.LagCoefficient(t, cfg.SampleRate)
		b1k := control.LagCoefficient(t, cfg.ControlRate())

		settle, residual, err := measureLag(cfg, t)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}

		if _, err := fmt.Fprintf(tw, "%g\t%.9f\t%.9f\t%.2f\t%d\t%.2f\n",
			t,
			b1a,
			b1k,
			response.PredictSettle(b1a, settleTolerance),
			settle,
			residual,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printTrig(cfg core.ProcessorConfig, durations []float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Duration [s]\tHold (audio) [smp]\tHold (control) [periods]\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "------------\t------------------\t------------------------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, d := range durations {
		if _, err := fmt.Fprintf(tw, "%g\t%d\t%d\n",
			d,
			control.HoldSamples(d, cfg.SampleRate),
			control.HoldSamples(d, cfg.ControlRate()),
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

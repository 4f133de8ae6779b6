package control

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-control/dsp/core"
	"github.com/cwbudde/algo-control/internal/testutil"
	"github.com/cwbudde/algo-control/measure/response"
)

func TestNewLagUD(t *testing.T) {
	l, err := NewLagUD(-0.5, testOptions(48000, 64)...)
	if err != nil {
		t.Fatalf("NewLagUD() error = %v", err)
	}
	up, down := l.LagTimes()
	if l.Value() != -0.5 || up != -1 || down != -1 {
		t.Fatalf("initial state = %+v", *l)
	}

	_, err = NewLagUD(0, core.WithConfig(core.ProcessorConfig{SampleRate: -1, BlockSize: 64}))
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("NewLagUD() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLagUDZeroTimesTrackInput(t *testing.T) {
	src := testutil.DeterministicNoise(5, 2, 128)

	l, _ := NewLagUD(1, testOptions(48000, 64)...)
	dst := make([]float64, 64)
	for block := 0; block < 2; block++ {
		in := src[block*64 : (block+1)*64]
		l.Process(dst, in, 0, 0, core.FullSpan)
		testutil.RequireSliceEqual(t, dst, in)
	}

	k, _ := NewLagUD(1, testOptions(48000, 64)...)
	for i, x := range src {
		if got := k.Next(x, 0, 0); got != x {
			t.Fatalf("Next[%d] = %v, want %v", i, got, x)
		}
	}
}

func TestLagUDRiseAndFallTimes(t *testing.T) {
	const (
		sampleRate = 1000.0
		upTime     = 0.05
		downTime   = 0.2
		blockSize  = 400
	)

	l, _ := NewLagUD(0, testOptions(sampleRate, blockSize)...)

	// Settle the coefficients on a silent block so the following blocks run
	// with fixed poles.
	buf := make([]float64, blockSize)
	l.Process(buf, make([]float64, blockSize), upTime, downTime, core.FullSpan)
	b1u, b1d := l.Coefficients()

	rise := make([]float64, blockSize)
	l.Process(rise, testutil.DC(1, blockSize), upTime, downTime, core.FullSpan)
	peak := l.Value()

	fall := make([]float64, 2*blockSize)
	l.Process(fall[:blockSize], make([]float64, blockSize), upTime, downTime, core.FullSpan)
	l.Process(fall[blockSize:], make([]float64, blockSize), upTime, downTime, core.FullSpan)

	riseSettle := float64(response.SettleIndex(rise, 1, 0.001) + 1)
	fallSettle := float64(response.SettleIndex(fall, 0, 0.001*peak) + 1)

	wantRise := response.PredictSettle(b1u, 0.001)
	wantFall := response.PredictSettle(b1d, 0.001)
	if math.Abs(wantRise-upTime*sampleRate) > 1e-6 || math.Abs(wantFall-downTime*sampleRate) > 1e-6 {
		t.Fatalf("predicted settle = (%v, %v), want (%v, %v)", wantRise, wantFall, upTime*sampleRate, downTime*sampleRate)
	}
	if math.Abs(riseSettle-wantRise) > 1 {
		t.Fatalf("rise settled after %v samples, want %v", riseSettle, wantRise)
	}
	if math.Abs(fallSettle-wantFall) > 1 {
		t.Fatalf("fall settled after %v samples, want %v", fallSettle, wantFall)
	}
}

func TestLagUDNextRecomputesBoth(t *testing.T) {
	l, _ := NewLagUD(0, testOptions(1000, 10)...)
	rate := l.Config().ControlRate()

	l.Next(1, 0.1, 0.2)
	l.Next(1, 0.1, 0.3)

	up, down := l.Coefficients()
	if up != LagCoefficient(0.1, rate) || down != LagCoefficient(0.3, rate) {
		t.Fatalf("coefficients = (%v, %v)", up, down)
	}
	if tu, td := l.LagTimes(); tu != 0.1 || td != 0.3 {
		t.Fatalf("lag times = (%v, %v), want (0.1, 0.3)", tu, td)
	}
}

func TestLagUDNextPersistsOnChange(t *testing.T) {
	l, _ := NewLagUD(0, testOptions(100, 1)...)
	b1u := LagCoefficient(0.1, 100)

	out := l.Next(1, 0.1, 0.5)
	if want := 1 + b1u*(0-1); out != want {
		t.Fatalf("Next() = %v, want %v", out, want)
	}
	if l.Value() != out {
		t.Fatalf("Value() = %v, want %v", l.Value(), out)
	}

	b1d := LagCoefficient(0.5, 100)
	down := l.Next(0, 0.1, 0.5)
	if want := b1d * out; down != want {
		t.Fatalf("falling Next() = %v, want %v", down, want)
	}
}

func TestLagUDSanitizesBlockPathOnly(t *testing.T) {
	const tiny = 1e-20

	block, _ := NewLagUD(tiny, testOptions(1000, 4)...)
	dst := make([]float64, 4)
	block.Process(dst, testutil.DC(tiny, 4), 0.01, 0.01, core.FullSpan)
	if dst[3] != tiny {
		t.Fatalf("dst[3] = %v, want %v (output is not sanitized)", dst[3], tiny)
	}
	if block.Value() != 0 {
		t.Fatalf("block Value() = %v, want 0", block.Value())
	}

	scalar, _ := NewLagUD(tiny, testOptions(1000, 4)...)
	scalar.Next(tiny, 0.01, 0.01)
	if scalar.Value() != tiny {
		t.Fatalf("scalar Value() = %v, want %v", scalar.Value(), tiny)
	}

	inf, _ := NewLagUD(0, testOptions(1000, 4)...)
	inf.Process(dst, testutil.DC(math.Inf(1), 4), 0, 0, core.FullSpan)
	if inf.Value() != 0 {
		t.Fatalf("Value() after Inf input = %v, want 0", inf.Value())
	}
}

func TestLagUDSpan(t *testing.T) {
	src := testutil.DeterministicNoise(9, 1, 10)
	span := core.Span{Offset: 3, Early: 2}

	partial, _ := NewLagUD(0.1, testOptions(1000, 10)...)
	sliced, _ := NewLagUD(0.1, testOptions(1000, 10)...)

	got := testutil.DC(-3, 10)
	partial.Process(got, src, 0.003, 0.007, span)

	want := make([]float64, 5)
	sliced.Process(want, src[3:8], 0.003, 0.007, core.FullSpan)

	testutil.RequireZero(t, got[:3])
	testutil.RequireZero(t, got[8:])
	testutil.RequireSliceEqual(t, got[3:8], want)
	if *partial != *sliced {
		t.Fatalf("state = %+v, want %+v", *partial, *sliced)
	}

	before := *partial
	partial.Process(got, src, 0.5, 0.5, core.Span{Offset: 10})
	testutil.RequireZero(t, got)
	if *partial != before {
		t.Fatalf("inactive block changed state: %+v, want %+v", *partial, before)
	}
}

package audio

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "voice-lab/errors"
)

func pesqSine(n, rate int, freq, amplitude float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return x
}

func TestScorePESQ_IdenticalSignalsScoreMaximum(t *testing.T) {
	req := require.New(t)

	x := pesqSine(16000, 16000, 440, 0.5)

	nb, err := ScorePESQ(16000, x, x, Narrowband)
	req.NoError(err)
	req.InDelta(4.5, nb, 1e-9)

	wb, err := ScorePESQ(16000, x, x, Wideband)
	req.NoError(err)
	req.InDelta(4.64, wb, 1e-9)
}

func TestScorePESQ_BothRates(t *testing.T) {
	req := require.New(t)

	for _, rate := range []int{8000, 16000} {
		x := pesqSine(rate, rate, 300, 0.4)
		score, err := ScorePESQ(rate, x, x, Narrowband)
		req.NoError(err)
		req.InDelta(4.5, score, 1e-9)
	}
}

func TestScorePESQ_ContractViolations(t *testing.T) {
	x := pesqSine(16000, 16000, 440, 0.5)

	tests := []struct {
		name string
		run  func() (float64, error)
	}{
		{
			name: "unsupported rate",
			run: func() (float64, error) {
				return ScorePESQ(44100, x, x, Narrowband)
			},
		},
		{
			name: "length mismatch",
			run: func() (float64, error) {
				return ScorePESQ(16000, x, x[:len(x)-1], Narrowband)
			},
		},
		{
			name: "empty buffers",
			run: func() (float64, error) {
				return ScorePESQ(16000, nil, nil, Narrowband)
			},
		},
		{
			name: "shorter than a frame",
			run: func() (float64, error) {
				return ScorePESQ(16000, x[:100], x[:100], Narrowband)
			},
		},
		{
			name: "unknown mode",
			run: func() (float64, error) {
				return ScorePESQ(16000, x, x, PESQMode("ultra"))
			},
		},
		{
			name: "wideband at 8 kHz",
			run: func() (float64, error) {
				y := pesqSine(8000, 8000, 440, 0.5)
				return ScorePESQ(8000, y, y, Wideband)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			_, err := tt.run()
			req.Error(err)

			var pesqErr *apperrors.PESQComputationError
			req.True(errors.As(err, &pesqErr), "want PESQComputationError, got %T", err)
		})
	}
}

func TestScorePESQ_CalibrationNoiseScoresHigh(t *testing.T) {
	req := require.New(t)

	clean := pesqSine(16000, 16000, 440, 0.5)
	degraded, _ := Degrade(clean)

	score, err := ScorePESQ(16000, clean, degraded, Narrowband)
	req.NoError(err)
	req.Greater(score, 3.0, "calibration level noise must stay in the upper range")
	req.Less(score, 4.5, "any noise at all must cost something")
}

func TestScorePESQ_MoreNoiseScoresLower(t *testing.T) {
	req := require.New(t)

	clean := pesqSine(32000, 16000, 440, 0.5)
	rng := rand.New(rand.NewPCG(7, 13))

	addNoise := func(sigma float64) []float64 {
		out := make([]float64, len(clean))
		for i, v := range clean {
			out[i] = v + rng.NormFloat64()*sigma
		}
		return out
	}

	mild, err := ScorePESQ(16000, clean, addNoise(0.01), Narrowband)
	req.NoError(err)
	heavy, err := ScorePESQ(16000, clean, addNoise(0.2), Narrowband)
	req.NoError(err)

	req.Less(heavy, mild)
}

func TestScorePESQ_SilentReferenceStaysFinite(t *testing.T) {
	req := require.New(t)

	clean := make([]float64, 16000)
	degraded, _ := Degrade(clean)

	score, err := ScorePESQ(16000, clean, degraded, Narrowband)
	req.NoError(err)
	req.False(math.IsNaN(score))
	req.False(math.IsInf(score, 0))
}

func TestBarkBands_CoverSpectrumBelowNyquist(t *testing.T) {
	req := require.New(t)

	for _, rate := range []int{8000, 16000} {
		frame := rate * pesqFrameMs / 1000
		bands := barkBands(rate, frame)
		req.NotEmpty(bands)

		last := 0
		for _, span := range bands {
			req.GreaterOrEqual(span[0], last, "bands must not overlap")
			req.Greater(span[1], span[0], "bands must hold at least one bin")
			req.LessOrEqual(span[1], frame/2+1)
			last = span[1]
		}
	}

	// Wideband analysis sees more of the spectrum.
	req.Greater(
		len(barkBands(16000, 512)),
		len(barkBands(8000, 256)),
	)
}

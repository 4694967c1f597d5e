package audio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	apperrors "voice-lab/errors"
)

// PESQMode selects the P.862 operating mode.
type PESQMode string

const (
	// Narrowband is standard P.862, defined at 8 and 16 kHz.
	Narrowband PESQMode = "nb"
	// Wideband is the P.862.2 variant, defined at 16 kHz only.
	Wideband PESQMode = "wb"
)

const (
	pesqFrameMs = 32
	// active level both signals are scaled to before comparison
	pesqTargetRMS = 0.1
	// keeps the loudness compression away from zero band powers
	pesqPowerFloor = 1e-12
	zwickerPower   = 0.23
	pesqAsymOffset = 1e-6
)

// barkEdges are the Zwicker critical band boundaries in Hz. Bands above
// the Nyquist frequency of the analyzed rate are dropped.
var barkEdges = []float64{
	0, 100, 200, 300, 400, 510, 630, 770, 920, 1080, 1270, 1480,
	1720, 2000, 2320, 2700, 3150, 3700, 4400, 5300, 6400, 7700,
	9500, 12000, 15500,
}

// ScorePESQ rates how audibly deg differs from ref, in the manner of
// ITU-T P.862: both signals are level aligned, cut into half-overlapped
// Hann frames, mapped onto Bark critical bands, loudness compressed,
// and the symmetric and asymmetric disturbances are folded into one
// MOS-like value. Identical inputs score the mode's maximum; the result
// is never clamped. Contract violations (bad rate, bad mode, length
// mismatch, too little signal) fail with PESQComputationError.
func ScorePESQ(rate int, ref, deg []float64, mode PESQMode) (float64, error) {
	switch mode {
	case Narrowband, Wideband:
	default:
		return 0, &apperrors.PESQComputationError{Reason: fmt.Sprintf("unknown mode %q", mode)}
	}
	if rate != 8000 && rate != 16000 {
		return 0, &apperrors.PESQComputationError{Reason: fmt.Sprintf("unsupported sample rate %d (want 8000 or 16000)", rate)}
	}
	if mode == Wideband && rate != 16000 {
		return 0, &apperrors.PESQComputationError{Reason: "wideband mode requires 16000 Hz"}
	}
	if len(ref) != len(deg) {
		return 0, &apperrors.PESQComputationError{Reason: fmt.Sprintf("reference and degraded length mismatch (%d vs %d)", len(ref), len(deg))}
	}

	frame := rate * pesqFrameMs / 1000
	if len(ref) < frame {
		return 0, &apperrors.PESQComputationError{Reason: "signal shorter than one analysis frame"}
	}

	refLevel := alignLevel(ref)
	degLevel := alignLevel(deg)

	an := newPESQAnalyzer(rate, frame)
	step := frame / 2

	var frameSym, frameAsym []float64
	for off := 0; off+frame <= len(refLevel); off += step {
		pr := an.bandPowers(refLevel[off : off+frame])
		pd := an.bandPowers(degLevel[off : off+frame])

		var sym2, asym float64
		for b := range pr {
			lr := math.Pow(pr[b]+pesqPowerFloor, zwickerPower)
			ld := math.Pow(pd[b]+pesqPowerFloor, zwickerPower)
			d := math.Abs(ld - lr)
			sym2 += d * d

			h := math.Pow((pd[b]+pesqAsymOffset)/(pr[b]+pesqAsymOffset), 1.2)
			switch {
			case h < 3:
				h = 0
			case h > 12:
				h = 12
			}
			asym += d * h
		}
		frameSym = append(frameSym, math.Sqrt(sym2))
		frameAsym = append(frameAsym, asym)
	}

	dSym := aggregateDisturbance(frameSym)
	dAsym := aggregateDisturbance(frameAsym)

	base := 4.5
	if mode == Wideband {
		base = 4.64
	}
	return base - 0.1*dSym - 0.0309*dAsym, nil
}

// alignLevel scales x to the shared target level so broadband gain
// differences do not read as degradation. A silent signal is returned
// as is.
func alignLevel(x []float64) []float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(len(x)))

	out := make([]float64, len(x))
	if rms == 0 {
		copy(out, x)
		return out
	}
	gain := pesqTargetRMS / rms
	for i, v := range x {
		out[i] = v * gain
	}
	return out
}

type pesqAnalyzer struct {
	fft     *fourier.FFT
	window  []float64
	bands   [][2]int
	scratch []float64
}

func newPESQAnalyzer(rate, frame int) *pesqAnalyzer {
	w := make([]float64, frame)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(frame-1)))
	}
	return &pesqAnalyzer{
		fft:     fourier.NewFFT(frame),
		window:  w,
		bands:   barkBands(rate, frame),
		scratch: make([]float64, frame),
	}
}

// barkBands maps the critical band edges to FFT bin ranges for the
// given rate and frame length.
func barkBands(rate, frame int) [][2]int {
	nyq := frame/2 + 1
	var bands [][2]int
	for b := 0; b+1 < len(barkEdges); b++ {
		lo := int(math.Ceil(barkEdges[b] * float64(frame) / float64(rate)))
		hi := int(math.Ceil(barkEdges[b+1] * float64(frame) / float64(rate)))
		if hi > nyq {
			hi = nyq
		}
		if lo >= hi {
			break
		}
		bands = append(bands, [2]int{lo, hi})
	}
	return bands
}

// bandPowers windows one frame and sums its spectral power per critical
// band.
func (a *pesqAnalyzer) bandPowers(x []float64) []float64 {
	for i, v := range x {
		a.scratch[i] = v * a.window[i]
	}
	spec := a.fft.Coefficients(nil, a.scratch)

	norm := float64(len(x)) * float64(len(x))
	powers := make([]float64, len(a.bands))
	for b, span := range a.bands {
		var sum float64
		for k := span[0]; k < span[1]; k++ {
			sum += real(spec[k])*real(spec[k]) + imag(spec[k])*imag(spec[k])
		}
		powers[b] = sum / norm
	}
	return powers
}

// aggregateDisturbance collapses per-frame disturbances the way the
// P.862 aggregation does: an order-6 power mean inside each syllable
// sized burst, then an RMS across bursts.
func aggregateDisturbance(d []float64) float64 {
	if len(d) == 0 {
		return 0
	}
	const burst = 20
	var bursts []float64
	for i := 0; i < len(d); i += burst {
		end := i + burst
		if end > len(d) {
			end = len(d)
		}
		var sum float64
		for _, v := range d[i:end] {
			sum += math.Pow(v, 6)
		}
		bursts = append(bursts, math.Pow(sum/float64(end-i), 1.0/6))
	}

	var sum float64
	for _, v := range bursts {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(bursts)))
}

package audio

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Resample converts x from srcRate to dstRate with Fourier-domain
// interpolation: the spectrum is truncated or zero-padded, never
// aliased. The output always holds exactly round(len(x)*dstRate/srcRate)
// samples.
func Resample(x []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate {
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}

	n := len(x)
	m := int(math.Round(float64(n) * float64(dstRate) / float64(srcRate)))
	if n == 0 || m == 0 {
		return make([]float64, 0)
	}

	fwd := fourier.NewFFT(n)
	spec := fwd.Coefficients(nil, x)

	shorter := n
	if m < shorter {
		shorter = m
	}

	bins := make([]complex128, m/2+1)
	copy(bins, spec[:shorter/2+1])

	// The bin at the shorter length's Nyquist frequency is shared
	// between the kept and dropped spectrum halves; rebalance it when
	// that length is even.
	if shorter%2 == 0 {
		if m < n {
			bins[shorter/2] *= 2
		} else {
			bins[shorter/2] *= 0.5
		}
	}

	inv := fourier.NewFFT(m)
	y := inv.Sequence(nil, bins)

	// Sequence is unnormalized: 1/m for the inverse transform times m/n
	// for the length change leaves 1/n.
	scale := 1 / float64(n)
	for i := range y {
		y[i] *= scale
	}
	return y
}

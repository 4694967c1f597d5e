package audio

import "math"

// EstimateSNR computes the signal-to-noise ratio in dB between a clean
// signal and the noise that was mixed into it. An all-zero signal reads
// as 0 dB regardless of the noise floor, and a noiseless nonzero signal
// reads as +Inf; every remaining pair uses the power-ratio formula.
func EstimateSNR(clean, noise []float64) float64 {
	signalPower := meanPower(clean)
	noisePower := meanPower(noise)

	if noisePower == 0 {
		if signalPower == 0 {
			return 0
		}
		return math.Inf(1)
	}
	if signalPower == 0 {
		return 0
	}
	return 10 * math.Log10(signalPower/noisePower)
}

func meanPower(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum / float64(len(x))
}

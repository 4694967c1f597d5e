package audio

import (
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// NoiseStdDev is the fixed deviation of the calibration noise mixed
// into every analyzed signal. Scores are only comparable across runs
// while this value stays put.
const NoiseStdDev = 0.01

var degradeSeq atomic.Uint64

// Degrade mixes zero-mean Gaussian noise into clean and returns the
// degraded copy together with the noise itself. Every call seeds its
// own generator, so concurrent invocations neither block each other nor
// share a noise stream.
func Degrade(clean []float64) (degraded, noise []float64) {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), degradeSeq.Add(1)))

	degraded = make([]float64, len(clean))
	noise = make([]float64, len(clean))
	for i, s := range clean {
		noise[i] = rng.NormFloat64() * NoiseStdDev
		degraded[i] = s + noise[i]
	}
	return degraded, noise
}

package audio

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDegrade_SumsCleanAndNoise(t *testing.T) {
	req := require.New(t)

	clean := make([]float64, 4096)
	for i := range clean {
		clean[i] = 0.25 * math.Sin(float64(i)*0.05)
	}

	degraded, noise := Degrade(clean)
	req.Len(degraded, len(clean))
	req.Len(noise, len(clean))
	for i := range clean {
		req.InDelta(clean[i]+noise[i], degraded[i], 1e-12)
	}
}

func TestDegrade_NoiseStatistics(t *testing.T) {
	req := require.New(t)

	clean := make([]float64, 200000)
	_, noise := Degrade(clean)

	var sum float64
	for _, v := range noise {
		sum += v
	}
	mean := sum / float64(len(noise))

	var sq float64
	for _, v := range noise {
		sq += (v - mean) * (v - mean)
	}
	std := math.Sqrt(sq / float64(len(noise)))

	req.InDelta(0.0, mean, 5e-4)
	req.InEpsilon(NoiseStdDev, std, 0.05)
}

func TestDegrade_IndependentDraws(t *testing.T) {
	req := require.New(t)

	clean := make([]float64, 256)
	_, first := Degrade(clean)
	_, second := Degrade(clean)

	req.NotEqual(first, second, "two invocations must not share a noise stream")
}

func TestDegrade_ConcurrentInvocations(t *testing.T) {
	req := require.New(t)

	clean := make([]float64, 512)
	const workers = 8

	noises := make([][]float64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, noises[i] = Degrade(clean)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		req.Len(noises[i], len(clean))
		for j := i + 1; j < workers; j++ {
			req.NotEqual(noises[i], noises[j], "workers %d and %d drew identical noise", i, j)
		}
	}
}

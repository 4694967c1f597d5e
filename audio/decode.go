package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	apperrors "voice-lab/errors"
)

// Signal is decoded audio: mono samples normalized into [-1, 1) plus
// the rate they are sampled at.
type Signal struct {
	Samples []float64
	Rate    int
}

// DecodeWAV reads a PCM WAV file into a mono float signal. Multi-channel
// sources are downmixed by averaging the channels per frame; integer
// samples are scaled according to their bit depth. 8-bit WAV stores
// unsigned bytes, so those are recentered before scaling.
func DecodeWAV(path string) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &apperrors.DecodeError{Reason: "opening wav file", Err: err}
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, &apperrors.DecodeError{Reason: "not a valid wav file"}
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, &apperrors.DecodeError{Reason: "reading pcm data", Err: err}
	}
	if len(buf.Data) == 0 {
		return nil, &apperrors.DecodeError{Reason: "zero-length audio stream"}
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, &apperrors.DecodeError{Reason: fmt.Sprintf("unsupported bit depth %d", bitDepth)}
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, &apperrors.DecodeError{Reason: "no channels in stream"}
	}

	scale := float64(int64(1) << (bitDepth - 1))
	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			v := float64(buf.Data[i*channels+ch])
			if bitDepth == 8 {
				v -= 128
			}
			sum += v
		}
		samples[i] = sum / float64(channels) / scale
	}

	return &Signal{Samples: samples, Rate: buf.Format.SampleRate}, nil
}

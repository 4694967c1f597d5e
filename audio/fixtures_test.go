package audio

import (
	"context"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

// execCommand runs an external tool for fixture generation.
func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// writeWAV encodes PCM samples into a fresh WAV file under dir and
// returns its path.
func writeWAV(t *testing.T, dir, name string, rate, channels, bitDepth int, data []int) string {
	t.Helper()
	req := require.New(t)

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	req.NoError(err)

	enc := wav.NewEncoder(f, rate, bitDepth, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	req.NoError(enc.Write(buf))
	req.NoError(enc.Close())
	req.NoError(f.Close())
	return path
}

// sineWave produces n samples of a sine at freq Hz as 16-bit PCM values.
func sineWave(n, rate int, freq, amplitude float64) []int {
	data := make([]int, n)
	for i := range data {
		v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
		data[i] = int(v * 32767)
	}
	return data
}

// writeBytes drops raw bytes into a file under dir, used for content
// sniffing fixtures.
func writeBytes(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// webmStub is the smallest byte sequence the sniffer identifies as a
// WebM container: the EBML magic followed by a DocType element.
func webmStub() []byte {
	return []byte("\x1A\x45\xDF\xA3\x42\x82\x84webm")
}

// pdfStub looks like a real PDF to magic-byte sniffing.
func pdfStub() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")
}

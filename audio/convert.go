package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"voice-lab/domain/mimetypes"
	apperrors "voice-lab/errors"
)

// Conversion is the outcome of one ToWAV call. WAVPath points at a
// playable PCM WAV. When the converter had to create that file the
// Conversion owns it and Cleanup removes it; a passthrough Conversion
// owns nothing, so the caller's input file is never deleted.
type Conversion struct {
	WAVPath string
	owned   bool
}

// Owned reports whether WAVPath is a temporary file created by the
// converter.
func (c *Conversion) Owned() bool { return c.owned }

// Cleanup deletes the converted file if this Conversion owns one. It is
// a no-op on passthrough results and on repeated calls.
func (c *Conversion) Cleanup() error {
	if !c.owned {
		return nil
	}
	c.owned = false
	if err := os.Remove(c.WAVPath); err != nil {
		return fmt.Errorf("removing converted file %s: %w", c.WAVPath, err)
	}
	return nil
}

// Converter turns any supported input into a 16-bit PCM WAV file by
// shelling out to ffmpeg. WAV inputs pass through untouched.
type Converter struct {
	log    *slog.Logger
	binary string
	tmpDir string
}

// NewConverter builds a converter writing temporary files into tmpDir.
// Empty binary and tmpDir fall back to "ffmpeg" on the search path and
// the system temp directory.
func NewConverter(log *slog.Logger, binary, tmpDir string) *Converter {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Converter{
		log:    log,
		binary: binary,
		tmpDir: tmpDir,
	}
}

// ToWAV converts the file at path into 16-bit PCM WAV, keeping the
// source sample rate and channel count. The codec hint is derived from
// the detected content type. Each call gets its own temporary file, and
// a failed conversion removes that file before reporting
// ConversionError.
func (c *Converter) ToWAV(ctx context.Context, path string, detected mimetypes.MIME) (*Conversion, error) {
	if mimetypes.IsWAV(detected) {
		return &Conversion{WAVPath: path}, nil
	}

	codec := mimetypes.Codec(detected)
	tmp, err := os.CreateTemp(c.tmpDir, "voicelab-*.wav")
	if err != nil {
		return nil, &apperrors.ConversionError{Codec: codec, Err: fmt.Errorf("creating temp file: %w", err)}
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, &apperrors.ConversionError{Codec: codec, Err: fmt.Errorf("closing temp file: %w", err)}
	}

	c.log.Info("converting to wav", "path", path, "codec", codec, "target", tmpPath)

	cmd := exec.CommandContext(ctx, c.binary,
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", codec,
		"-i", path,
		"-vn",
		"-acodec", "pcm_s16le",
		tmpPath,
	)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		os.Remove(tmpPath)
		return nil, &apperrors.ConversionError{Codec: codec, Err: fmt.Errorf("failed to create stderr pipe: %w", err)}
	}
	if err := cmd.Start(); err != nil {
		os.Remove(tmpPath)
		return nil, &apperrors.ConversionError{Codec: codec, Err: fmt.Errorf("failed to start %s: %w", c.binary, err)}
	}

	stderrData := make(chan []byte, 1)
	go func() {
		data, _ := io.ReadAll(stderr)
		stderrData <- data
	}()

	if err := cmd.Wait(); err != nil {
		errMsg := <-stderrData
		os.Remove(tmpPath)
		if ctx.Err() != nil {
			return nil, &apperrors.ConversionError{Codec: codec, Err: fmt.Errorf("conversion cancelled: %w", ctx.Err())}
		}
		return nil, &apperrors.ConversionError{Codec: codec, Err: fmt.Errorf("%w: %s", err, bytes.TrimSpace(errMsg))}
	}

	c.log.Info("converted to wav", "codec", codec, "target", tmpPath)
	return &Conversion{WAVPath: tmpPath, owned: true}, nil
}

// CheckFFmpegInstalled verifies the conversion tool can be executed.
func CheckFFmpegInstalled(binary string) error {
	if binary == "" {
		binary = "ffmpeg"
	}
	cmd := exec.Command(binary, "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

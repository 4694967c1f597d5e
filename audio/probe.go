//go:generate go run go.uber.org/mock/mockgen -source=probe.go -destination=../mocks/mock_stream_lister.go -package=mocks
package audio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gabriel-vasile/mimetype"

	"voice-lab/domain/mimetypes"
	apperrors "voice-lab/errors"
)

// Stream is a single track reported by the container inspector.
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
}

// StreamList holds every track found in a media container.
type StreamList struct {
	Streams []Stream `json:"streams"`
}

// HasVideo reports whether any track in the container is a video track.
func (l *StreamList) HasVideo() bool {
	for _, s := range l.Streams {
		if s.CodecType == "video" {
			return true
		}
	}
	return false
}

// StreamLister inspects a media container and reports its tracks.
// Implementations typically shell out to an external tool; the caller
// treats any error as "no stream information available" rather than a
// fatal condition.
type StreamLister interface {
	ListStreams(ctx context.Context, path string) (*StreamList, error)
}

// Prober resolves the effective content type of a file from its magic
// bytes. The file extension is never consulted.
type Prober struct {
	log    *slog.Logger
	lister StreamLister
}

func NewProber(log *slog.Logger, lister StreamLister) *Prober {
	return &Prober{
		log:    log,
		lister: lister,
	}
}

// Detect sniffs the content type of the file at path. WAV types are
// returned immediately. A WebM-family container is inspected for tracks
// and reclassified as audio/webm when it carries no video track; if the
// inspection fails the sniffed type stands. Detect returns
// UnsupportedFormatError when the effective type cannot hold audio.
func (p *Prober) Detect(ctx context.Context, path string) (mimetypes.MIME, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return mimetypes.Unknown, fmt.Errorf("sniffing %s: %w", path, err)
	}
	detected := mimetypes.Parse(mtype.String())
	p.log.Info("detected file type", "path", path, "mime", detected)

	if mimetypes.IsWAV(detected) {
		return detected, nil
	}

	if mimetypes.IsWebMFamily(detected) && detected != mimetypes.AudioWebM {
		list, err := p.lister.ListStreams(ctx, path)
		switch {
		case err != nil:
			p.log.Warn("no stream information available", "path", path, "error", err)
		case !list.HasVideo():
			p.log.Info("container carries only audio streams", "path", path, "mime", detected)
			detected = mimetypes.AudioWebM
		}
	}

	if !mimetypes.IsAudio(detected) {
		return detected, &apperrors.UnsupportedFormatError{Detected: string(detected)}
	}
	return detected, nil
}

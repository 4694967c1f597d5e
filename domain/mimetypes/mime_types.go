package mimetypes

import (
	"mime"
	"strings"
)

type MIME string

const (
	Unknown MIME = "unknown"

	AudioWAV     MIME = "audio/wav"
	AudioXWAV    MIME = "audio/x-wav"
	AudioWAVE    MIME = "audio/wave"
	AudioVndWave MIME = "audio/vnd.wave"

	AudioWebM MIME = "audio/webm"
	VideoWebM MIME = "video/webm"
	VideoMKV  MIME = "video/x-matroska"

	AudioMPEG MIME = "audio/mpeg"
	AudioOgg  MIME = "audio/ogg"
	AudioM4A  MIME = "audio/x-m4a"
	AudioAAC  MIME = "audio/aac"
	AudioFLAC MIME = "audio/flac"
	VideoMP4  MIME = "video/mp4"
	VideoM4V  MIME = "video/x-m4v"
)

// codecs maps a detected content type to the codec name handed to the
// conversion tool. Types missing here fall back to the substring after
// the final slash.
var codecs = map[MIME]string{
	AudioWebM: "webm",
	VideoWebM: "webm",
	AudioMPEG: "mp3",
	AudioOgg:  "ogg",
	AudioM4A:  "m4a",
	AudioAAC:  "aac",
	AudioFLAC: "flac",
	VideoMP4:  "mp4",
	VideoM4V:  "m4v",
}

// Parse normalizes a detected content type, stripping any parameters
// (mimetype.Detect may report "audio/wav; codecs=1" style values).
func Parse(detected string) MIME {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown
	}
	return MIME(mt)
}

// Codec returns the conversion codec for m, falling back to the
// substring after the final "/" when the table has no entry.
func Codec(m MIME) string {
	if codec, ok := codecs[m]; ok {
		return codec
	}
	s := string(m)
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// IsWAV reports whether m is one of the WAV container types which skip
// conversion entirely.
func IsWAV(m MIME) bool {
	switch m {
	case AudioWAV, AudioXWAV, AudioWAVE, AudioVndWave:
		return true
	}
	return false
}

// IsWebMFamily reports whether m is a Matroska-derived container whose
// stream list decides if it is audio-only.
func IsWebMFamily(m MIME) bool {
	switch m {
	case AudioWebM, VideoWebM, VideoMKV:
		return true
	}
	return false
}

// IsAudio reports whether m is accepted by the analyzer: any audio type,
// or a WebM container (which may carry audio-only content).
func IsAudio(m MIME) bool {
	return strings.HasPrefix(string(m), "audio/") || m == VideoWebM
}

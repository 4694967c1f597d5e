package mimetypes

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		detected string
		want     MIME
	}{
		{"Plain WAV", "audio/wav", AudioWAV},
		{"WAV with codec parameter", "audio/wav; codecs=1", AudioWAV},
		{"WebM video", "video/webm", VideoWebM},
		{"MPEG audio", "audio/mpeg", AudioMPEG},
		{"Invalid MIME", "not a mime", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.detected); got != tt.want {
				t.Errorf("Parse(%q) = %q; want %q", tt.detected, got, tt.want)
			}
		})
	}
}

func TestCodec(t *testing.T) {
	tests := []struct {
		name string
		mime MIME
		want string
	}{
		// Fixed table entries
		{"WebM audio", AudioWebM, "webm"},
		{"WebM video", VideoWebM, "webm"},
		{"MPEG maps to mp3", AudioMPEG, "mp3"},
		{"Ogg", AudioOgg, "ogg"},
		{"M4A", AudioM4A, "m4a"},
		{"AAC", AudioAAC, "aac"},
		{"FLAC", AudioFLAC, "flac"},
		{"MP4", VideoMP4, "mp4"},
		{"M4V", VideoM4V, "m4v"},

		// Fallback: substring after the final slash
		{"Opus falls back", MIME("audio/opus"), "opus"},
		{"AMR falls back", MIME("audio/amr"), "amr"},
		{"No slash at all", MIME("weird"), "weird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Codec(tt.mime); got != tt.want {
				t.Errorf("Codec(%q) = %q; want %q", tt.mime, got, tt.want)
			}
		})
	}
}

func TestIsWAV(t *testing.T) {
	tests := []struct {
		name string
		mime MIME
		want bool
	}{
		{"audio/wav", AudioWAV, true},
		{"audio/x-wav", AudioXWAV, true},
		{"audio/wave", AudioWAVE, true},
		{"audio/vnd.wave", AudioVndWave, true},
		{"mp3 is not wav", AudioMPEG, false},
		{"webm is not wav", VideoWebM, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWAV(tt.mime); got != tt.want {
				t.Errorf("IsWAV(%q) = %v; want %v", tt.mime, got, tt.want)
			}
		})
	}
}

func TestIsAudio(t *testing.T) {
	tests := []struct {
		name string
		mime MIME
		want bool
	}{
		{"Any audio type", AudioFLAC, true},
		{"WebM video container is accepted", VideoWebM, true},
		{"MP4 video is rejected", VideoMP4, false},
		{"M4V video is rejected", VideoM4V, false},
		{"PDF is rejected", MIME("application/pdf"), false},
		{"Matroska is rejected", VideoMKV, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAudio(tt.mime); got != tt.want {
				t.Errorf("IsAudio(%q) = %v; want %v", tt.mime, got, tt.want)
			}
		})
	}
}

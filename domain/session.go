package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecordingSession tracks one client recording flow: created before the
// recording starts, enriched with the analysis outcome and the uploaded
// object location once the audio comes back.
type RecordingSession struct {
	ID                uuid.UUID       `json:"recording_session_id" msgpack:"recording_session_id"`
	DeviceName        string          `json:"device_name" msgpack:"device_name"`
	IPAddress         string          `json:"ip_address" msgpack:"ip_address"`
	AudioFormat       string          `json:"audio_format" msgpack:"audio_format"`
	MicrophoneDetails string          `json:"microphone_details,omitempty" msgpack:"microphone_details"`
	SpeakerDetails    string          `json:"speaker_details,omitempty" msgpack:"speaker_details"`
	S3Location        *string         `json:"s3_location" msgpack:"s3_location"`
	AnalysisOutput    *AnalysisReport `json:"analysis_output" msgpack:"analysis_output"`
	AnalysisScore     *float64        `json:"analysis_score" msgpack:"analysis_score"`
	CreatedAt         time.Time       `json:"created_at" msgpack:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" msgpack:"updated_at"`
}

// StartSessionRequest is the payload opening a new recording session.
// Field limits mirror the session store columns: device names up to 255
// characters, textual IPv4/IPv6 up to 45.
type StartSessionRequest struct {
	DeviceName        string `json:"device_name" validate:"required,min=1,max=255"`
	IPAddress         string `json:"ip_address" validate:"required,ip"`
	AudioFormat       string `json:"audio_format" validate:"omitempty,max=10"`
	MicrophoneDetails string `json:"microphone_details" validate:"omitempty,max=512"`
	SpeakerDetails    string `json:"speaker_details" validate:"omitempty,max=512"`
}

package errors

import "fmt"

var (
	ErrSessionNotFound       = fmt.Errorf("recording session not found")
	ErrSessionExists         = fmt.Errorf("recording session already exists")
	ErrInvalidSessionRequest = fmt.Errorf("invalid recording session request")
	ErrNoFileUploaded        = fmt.Errorf("no file uploaded")
	ErrEmptySignal           = fmt.Errorf("signal contains no samples")
	ErrNoCredentials         = fmt.Errorf("no credentials available")
)

// UnsupportedFormatError is returned by the prober when the sniffed content
// type is neither an audio type nor a WebM container. Detected carries the
// type found in the magic bytes, never the file extension.
type UnsupportedFormatError struct {
	Detected string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("file is not an audio file (detected %s)", e.Detected)
}

// ConversionError wraps a failure of the external conversion tool.
type ConversionError struct {
	Codec string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("audio conversion failed (codec %s): %v", e.Codec, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// DecodeError signals a corrupt, empty or unsupported WAV payload.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio decode failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("audio decode failed: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PESQComputationError signals that the perceptual scorer could not produce
// a score for the given pair of buffers.
type PESQComputationError struct {
	Reason string
}

func (e *PESQComputationError) Error() string {
	return fmt.Sprintf("pesq computation failed: %s", e.Reason)
}

package voice

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrTooLarge          = errors.New("audio file too large")
	ErrEmptyAudio        = errors.New("audio file is empty")
	ErrRequestNotFound   = errors.New("request not found")
	ErrEnqueue           = errors.New("could not queue request for processing")
	ErrNoSpeech          = errors.New("no speech detected")
)

package domain

import "errors"

var (
	// ErrUnknownSpeechType is returned when a speech type name does not resolve.
	ErrUnknownSpeechType = errors.New("unknown speech type")

	// ErrRecordNotFound is returned when a speech record does not exist.
	ErrRecordNotFound = errors.New("speech record not found")
)

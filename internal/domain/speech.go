package domain

import "fmt"

// SpeechType categorizes a timed speech. The category determines the
// default duration and the urgency threshold preset.
type SpeechType string

const (
	SpeechPrepared   SpeechType = "prepared"
	SpeechImpromptu  SpeechType = "impromptu"
	SpeechEvaluative SpeechType = "evaluative"
)

// SpeechTypes returns all speech types in display order.
func SpeechTypes() []SpeechType {
	return []SpeechType{SpeechPrepared, SpeechImpromptu, SpeechEvaluative}
}

// Valid reports whether t is a known speech type.
func (t SpeechType) Valid() bool {
	switch t {
	case SpeechPrepared, SpeechImpromptu, SpeechEvaluative:
		return true
	}
	return false
}

// ThresholdGroup returns the speech type whose threshold preset applies.
// Evaluative speeches share the impromptu preset.
func (t SpeechType) ThresholdGroup() SpeechType {
	if t == SpeechEvaluative {
		return SpeechImpromptu
	}
	return t
}

// GetSpeechTypeLabel returns a human-readable label for the speech type.
func GetSpeechTypeLabel(t SpeechType) string {
	switch t {
	case SpeechPrepared:
		return "Prepared"
	case SpeechImpromptu:
		return "Impromptu"
	case SpeechEvaluative:
		return "Evaluative"
	default:
		return "Unknown"
	}
}

// ParseSpeechType resolves a user-supplied name to a speech type.
func ParseSpeechType(s string) (SpeechType, error) {
	t := SpeechType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSpeechType, s)
	}
	return t, nil
}

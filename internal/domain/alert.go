package domain

import (
	"fmt"
	"strings"
)

// AlertTimeUp is shown when the countdown reaches zero.
const AlertTimeUp = "Time's up!"

// FormatRemaining renders a remaining-time alert for custom totals,
// e.g. "1 minute 30 seconds remaining". Zero components are omitted.
func FormatRemaining(totalSeconds int) string {
	m := totalSeconds / 60
	s := totalSeconds % 60

	var parts []string
	if m == 1 {
		parts = append(parts, "1 minute")
	} else if m > 1 {
		parts = append(parts, fmt.Sprintf("%d minutes", m))
	}
	if s == 1 {
		parts = append(parts, "1 second")
	} else if s > 1 {
		parts = append(parts, fmt.Sprintf("%d seconds", s))
	}
	if len(parts) == 0 {
		parts = append(parts, "0 seconds")
	}

	return strings.Join(parts, " ") + " remaining"
}

// PresetAlert returns the canned wording for a threshold crossing at a
// speech type's canonical duration. Prepared speeches announce the
// two-minute and one-minute marks; impromptu and evaluative speeches
// announce the one-minute and thirty-second marks.
func PresetAlert(t SpeechType, band TimerColor) string {
	if t.ThresholdGroup() == SpeechPrepared {
		if band == ColorGreen {
			return "2 minutes remaining"
		}
		return "1 minute remaining"
	}
	if band == ColorGreen {
		return "1 minute remaining"
	}
	return "30 seconds remaining"
}

package ports

import "github.com/xvierd/podium/internal/domain"

// Notifier delivers out-of-band alerts to the user.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// Notify shows a notification with a title and message.
	Notify(title, message string) error

	// NotifyTimeUp announces that a speech timer ran out.
	NotifyTimeUp(speechType domain.SpeechType) error

	// NotifyThreshold announces a color threshold crossing.
	NotifyThreshold(message string) error

	// IsEnabled reports whether notifications are turned on.
	IsEnabled() bool
}

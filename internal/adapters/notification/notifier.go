// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/podium/internal/config"
	"github.com/xvierd/podium/internal/domain"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg *config.NotificationConfig
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}

	return beeep.Notify(title, message, "")
}

// NotifyTimeUp displays a notification when a speech timer runs out.
func (n *Notifier) NotifyTimeUp(speechType domain.SpeechType) error {
	title := "🎤 " + domain.AlertTimeUp
	message := fmt.Sprintf("Your %s speech has reached its time limit.", speechType)
	return n.Notify(title, message)
}

// NotifyThreshold displays a notification when a color threshold is crossed.
func (n *Notifier) NotifyThreshold(message string) error {
	return n.Notify("🎤 Podium", message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

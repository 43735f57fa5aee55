package countdown

import (
	"time"

	"github.com/xvierd/podium/internal/domain"
)

// Option configures a Controller.
type Option func(*Controller)

// WithTickInterval sets the countdown tick period. The default is one
// second; tests compress it.
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) {
		c.tickInterval = d
	}
}

// WithAlertDuration sets how long a transient alert stays visible
// before it auto-clears.
func WithAlertDuration(d time.Duration) Option {
	return func(c *Controller) {
		c.alertDuration = d
	}
}

// WithCompletionDelay sets the pause between the countdown reaching
// zero and the completion callback firing.
func WithCompletionDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.completionDelay = d
	}
}

// WithOnComplete sets a callback invoked once per natural completion,
// after the completion delay.
func WithOnComplete(fn func()) Option {
	return func(c *Controller) {
		c.onComplete = fn
	}
}

// WithOnAlert sets a callback invoked on every threshold crossing with
// the alert message. It runs on its own goroutine and never fires for
// the final time-up alert, which WithOnComplete covers.
func WithOnAlert(fn func(msg string)) Option {
	return func(c *Controller) {
		c.onAlert = fn
	}
}

// WithOverride supplies an explicit duration that takes precedence over
// the speech type's default.
func WithOverride(clock domain.Clock) Option {
	return func(c *Controller) {
		o := clock
		c.override = &o
	}
}

// WithHideCountdown starts the timer with the countdown display hidden.
func WithHideCountdown(hide bool) Option {
	return func(c *Controller) {
		c.hideCountdown = hide
	}
}

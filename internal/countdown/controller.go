// Package countdown implements the speech countdown timer: a single
// in-memory timer instance that tracks remaining time, drives
// color-coded urgency bands and fires transient threshold alerts.
package countdown

import (
	"sync"
	"time"

	"github.com/xvierd/podium/internal/domain"
)

// Snapshot is a point-in-time copy of the timer state, safe to hand to
// a rendering layer.
type Snapshot struct {
	SpeechType    domain.SpeechType
	Minutes       int
	Seconds       int
	Running       bool
	Paused        bool
	Remaining     int
	Total         int
	Progress      float64
	Color         domain.TimerColor
	Alert         string
	HideCountdown bool
}

// Idle reports whether the timer is neither running nor paused.
// Running stays true while paused; a paused timer is not idle.
func (s Snapshot) Idle() bool {
	return !s.Running && !s.Paused
}

// CountingDown reports whether ticks are currently being consumed.
func (s Snapshot) CountingDown() bool {
	return s.Running && !s.Paused
}

// Clock returns the displayed minutes/seconds.
func (s Snapshot) Clock() domain.Clock {
	return domain.Clock{Minutes: s.Minutes, Seconds: s.Seconds}
}

// RunSummary describes the last run that ended, for history recording.
type RunSummary struct {
	SpeechType     domain.SpeechType
	PlannedSeconds int
	ElapsedSeconds int
	Completed      bool
	StartedAt      time.Time
}

// Controller owns one countdown timer. All state lives behind a single
// mutex; the periodic tick, the alert auto-clear and the completion
// delay are the only asynchronous sources, and each is cancellable.
// Control calls in an invalid state are no-ops rather than errors.
type Controller struct {
	mu sync.Mutex

	timing     domain.TimingConfig
	speechType domain.SpeechType
	override   *domain.Clock

	minutes       int
	seconds       int
	running       bool
	paused        bool
	remaining     int
	total         int
	progress      float64
	color         domain.TimerColor
	alert         string
	hideCountdown bool

	startedAt time.Time
	lastRun   *RunSummary

	tickInterval    time.Duration
	alertDuration   time.Duration
	completionDelay time.Duration
	onComplete      func()
	onAlert         func(msg string)

	stopTick      chan struct{}
	alertSeq      int
	alertTimer    *time.Timer
	completeTimer *time.Timer
	closed        bool
}

// New creates an idle controller configured for the given speech type.
// The initial duration is the type's default unless an override option
// is supplied.
func New(timing domain.TimingConfig, speechType domain.SpeechType, opts ...Option) *Controller {
	c := &Controller{
		timing:          timing,
		speechType:      speechType,
		progress:        1,
		color:           domain.ColorDefault,
		tickInterval:    time.Second,
		alertDuration:   3 * time.Second,
		completionDelay: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	clock := timing.DefaultClock(speechType)
	if c.override != nil {
		clock = *c.override
	}
	c.applyClockLocked(clock)

	return c
}

// Start begins the countdown from the configured minutes/seconds.
// No-op when a run is already in progress.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.running {
		return
	}

	c.total = c.minutes*60 + c.seconds
	c.remaining = c.total
	c.progress = 1
	c.running = true
	c.paused = false
	c.startedAt = time.Now()
	c.updateColorLocked()
	c.startTickLocked()
}

// Pause suspends the countdown, keeping the remaining time.
// No-op unless running and not already paused.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.running || c.paused {
		return
	}

	c.cancelTickLocked()
	c.paused = true
}

// Resume continues a paused countdown from the exact remaining time.
// No-op unless paused.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.running || !c.paused {
		return
	}

	c.paused = false
	c.startTickLocked()
}

// Reset restores the speech type's default duration. A running (or
// paused) timer immediately starts counting down again from the fresh
// duration; an idle timer stays idle.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.cancelTickLocked()
	c.applyClockLocked(c.timing.DefaultClock(c.speechType))
	c.color = domain.ColorDefault

	if c.running {
		c.paused = false
		c.startedAt = time.Now()
		c.startTickLocked()
	}
}

// Stop cancels the countdown and returns to idle at the default
// duration. A showing alert is left alone: its auto-clear keeps
// running and the message may linger into the idle state.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if c.running {
		c.lastRun = &RunSummary{
			SpeechType:     c.speechType,
			PlannedSeconds: c.total,
			ElapsedSeconds: c.total - c.remaining,
			Completed:      false,
			StartedAt:      c.startedAt,
		}
	}

	c.cancelTickLocked()
	c.running = false
	c.paused = false
	c.applyClockLocked(c.timing.DefaultClock(c.speechType))
	c.color = domain.ColorDefault
}

// Close cancels every timer source. The controller must not be used
// afterwards; this is the unmount path.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTickLocked()
	if c.alertTimer != nil {
		c.alertTimer.Stop()
		c.alertTimer = nil
	}
	if c.completeTimer != nil {
		c.completeTimer.Stop()
		c.completeTimer = nil
	}
	c.closed = true
}

// SetMinutes edits the configured minutes. Ignored unless idle.
func (c *Controller) SetMinutes(m int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.idleLocked() {
		return
	}
	c.applyClockLocked(domain.Clock{Minutes: m, Seconds: c.seconds})
}

// SetSeconds edits the configured seconds. Ignored unless idle.
func (c *Controller) SetSeconds(s int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.idleLocked() {
		return
	}
	c.applyClockLocked(domain.Clock{Minutes: c.minutes, Seconds: s})
}

// SetSpeechType switches the speech category. Ignored unless idle.
// The duration resets to the new type's default unless an explicit
// override is in effect, in which case the override wins.
func (c *Controller) SetSpeechType(t domain.SpeechType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.idleLocked() {
		return
	}

	c.speechType = t
	clock := c.timing.DefaultClock(t)
	if c.override != nil {
		clock = *c.override
	}
	c.applyClockLocked(clock)
}

// SetOverride supplies or clears an explicit duration. Ignored unless
// idle. Clearing falls back to the speech type's default.
func (c *Controller) SetOverride(clock *domain.Clock) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.idleLocked() {
		return
	}

	if clock == nil {
		c.override = nil
		c.applyClockLocked(c.timing.DefaultClock(c.speechType))
		return
	}
	o := *clock
	c.override = &o
	c.applyClockLocked(o)
}

// SetHideCountdown toggles the hidden-countdown flag. It has no effect
// on timing and is allowed in any state.
func (c *Controller) SetHideCountdown(hide bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideCountdown = hide
}

// Snapshot returns a copy of the current timer state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		SpeechType:    c.speechType,
		Minutes:       c.minutes,
		Seconds:       c.seconds,
		Running:       c.running,
		Paused:        c.paused,
		Remaining:     c.remaining,
		Total:         c.total,
		Progress:      c.progress,
		Color:         c.color,
		Alert:         c.alert,
		HideCountdown: c.hideCountdown,
	}
}

// LastRun returns the summary of the most recently ended run, if any.
func (c *Controller) LastRun() (RunSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastRun == nil {
		return RunSummary{}, false
	}
	return *c.lastRun, true
}

// SpeechType returns the configured speech category.
func (c *Controller) SpeechType() domain.SpeechType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speechType
}

// idleLocked reports whether configuration edits are permitted.
func (c *Controller) idleLocked() bool {
	return !c.closed && !c.running && !c.paused
}

// applyClockLocked installs a duration while idle: total and remaining
// follow the clock and progress resets to full.
func (c *Controller) applyClockLocked(clock domain.Clock) {
	c.minutes = clock.Minutes
	c.seconds = clock.Seconds
	c.total = clock.TotalSeconds()
	c.remaining = c.total
	c.progress = 1
}

// startTickLocked launches the periodic tick source, cancelling any
// stale one first so the decrement rate can never double.
func (c *Controller) startTickLocked() {
	c.cancelTickLocked()
	stop := make(chan struct{})
	c.stopTick = stop

	interval := c.tickInterval
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.tick()
			}
		}
	}()
}

// cancelTickLocked stops the periodic tick source if one is active.
func (c *Controller) cancelTickLocked() {
	if c.stopTick != nil {
		close(c.stopTick)
		c.stopTick = nil
	}
}

// tick advances the countdown by one second.
func (c *Controller) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.running || c.paused {
		return
	}

	if c.remaining <= 1 {
		c.completeLocked()
		return
	}

	c.remaining--
	if c.total > 0 {
		c.progress = float64(c.remaining) / float64(c.total)
	} else {
		c.progress = 1
	}

	thresholds := c.timing.ThresholdsFor(c.speechType, c.total)
	switch c.remaining {
	case thresholds.Green:
		c.crossingAlertLocked(domain.ColorGreen)
	case thresholds.Orange:
		c.crossingAlertLocked(domain.ColorOrange)
	}

	clock := domain.ClockFromSeconds(c.remaining)
	c.minutes = clock.Minutes
	c.seconds = clock.Seconds
	c.updateColorLocked()
}

// completeLocked handles the final tick: the countdown lands on
// exactly zero, the run ends, and the completion callback fires after
// a short delay so the zero display is seen before any side effect.
func (c *Controller) completeLocked() {
	c.remaining = 0
	c.minutes = 0
	c.seconds = 0
	if c.total > 0 {
		c.progress = 0
	} else {
		c.progress = 1
	}
	c.cancelTickLocked()
	c.running = false
	c.paused = false
	c.updateColorLocked()

	c.lastRun = &RunSummary{
		SpeechType:     c.speechType,
		PlannedSeconds: c.total,
		ElapsedSeconds: c.total,
		Completed:      true,
		StartedAt:      c.startedAt,
	}

	c.showAlertLocked(domain.AlertTimeUp)

	if c.onComplete != nil {
		c.completeTimer = time.AfterFunc(c.completionDelay, c.onComplete)
	}
}

// crossingAlertLocked emits the threshold alert for an exact crossing.
// Custom totals use the generic wording; the speech type's canonical
// duration uses the canned preset strings.
func (c *Controller) crossingAlertLocked(band domain.TimerColor) {
	msg := domain.PresetAlert(c.speechType, band)
	if c.timing.IsCustomTotal(c.speechType, c.total) {
		msg = domain.FormatRemaining(c.remaining)
	}
	c.showAlertLocked(msg)

	if c.onAlert != nil {
		// Off the lock: the callback may do slow IO or call back in.
		go c.onAlert(msg)
	}
}

// showAlertLocked replaces the visible alert and restarts its
// auto-clear. The sequence number keeps a late clear from a superseded
// alert from wiping a newer message.
func (c *Controller) showAlertLocked(msg string) {
	c.alert = msg
	c.alertSeq++
	seq := c.alertSeq

	if c.alertTimer != nil {
		c.alertTimer.Stop()
	}
	c.alertTimer = time.AfterFunc(c.alertDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.alertSeq == seq {
			c.alert = ""
		}
	})
}

// updateColorLocked recomputes the urgency band from the remaining
// time, writing the field only when it actually changes.
func (c *Controller) updateColorLocked() {
	thresholds := c.timing.ThresholdsFor(c.speechType, c.total)
	color := thresholds.ColorFor(c.remaining)
	if color != c.color {
		c.color = color
	}
}

package countdown

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/xvierd/podium/internal/domain"
)

// newManual returns a controller whose periodic source effectively
// never fires, so tests drive ticks by hand.
func newManual(t domain.SpeechType, opts ...Option) *Controller {
	opts = append([]Option{WithTickInterval(time.Hour)}, opts...)
	return New(domain.DefaultTimingConfig(), t, opts...)
}

// advance drives n manual ticks.
func advance(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.tick()
	}
}

func (c *Controller) tickActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopTick != nil
}

func (c *Controller) alertGeneration() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alertSeq
}

func TestController_StartSnapshotsConfiguration(t *testing.T) {
	c := newManual(domain.SpeechPrepared)
	defer c.Close()

	c.Start()

	s := c.Snapshot()
	if !s.Running || s.Paused {
		t.Fatalf("after Start: running=%v paused=%v, want running idle=false", s.Running, s.Paused)
	}
	if s.Total != 420 || s.Remaining != 420 {
		t.Errorf("after Start: total=%d remaining=%d, want 420/420", s.Total, s.Remaining)
	}
	if s.Progress != 1 {
		t.Errorf("after Start: progress=%v, want 1", s.Progress)
	}
	if !c.tickActive() {
		t.Error("after Start: no periodic source active")
	}
}

func TestController_StartWhileRunningIsNoOp(t *testing.T) {
	c := newManual(domain.SpeechPrepared)
	defer c.Close()

	c.Start()
	advance(c, 10)
	before := c.Snapshot()

	c.Start()

	after := c.Snapshot()
	if after != before {
		t.Errorf("Start() while running changed state: %+v -> %+v", before, after)
	}
}

func TestController_StartWhilePausedIsNoOp(t *testing.T) {
	c := newManual(domain.SpeechPrepared)
	defer c.Close()

	c.Start()
	advance(c, 5)
	c.Pause()
	before := c.Snapshot()

	c.Start()

	after := c.Snapshot()
	if after != before {
		t.Errorf("Start() while paused changed state: %+v -> %+v", before, after)
	}
}

func TestController_DoubleStartDoesNotDoubleTickRate(t *testing.T) {
	c := New(domain.DefaultTimingConfig(), domain.SpeechImpromptu,
		WithTickInterval(20*time.Millisecond))
	defer c.Close()

	c.Start()
	time.Sleep(50 * time.Millisecond)
	c.Start()
	time.Sleep(60 * time.Millisecond)

	s := c.Snapshot()
	elapsed := s.Total - s.Remaining
	// ~110ms at 20ms/tick is about 5 decrements; a doubled source
	// would show about 10.
	if elapsed < 2 || elapsed > 8 {
		t.Errorf("elapsed %d decrements over ~110ms, want single-rate ticking", elapsed)
	}
}

func TestController_ProgressTracksRemaining(t *testing.T) {
	c := newManual(domain.SpeechImpromptu)
	defer c.Close()

	c.Start()
	for i := 0; i < 60; i++ {
		c.tick()
		s := c.Snapshot()
		want := float64(s.Remaining) / float64(s.Total)
		if s.Progress != want {
			t.Fatalf("after tick %d: progress=%v, want %v", i+1, s.Progress, want)
		}
	}
}

func TestController_PreparedPresetAlerts(t *testing.T) {
	c := newManual(domain.SpeechPrepared, WithAlertDuration(time.Hour))
	defer c.Close()

	c.Start()

	// 420 -> 120: the green crossing.
	advance(c, 300)
	s := c.Snapshot()
	if s.Remaining != 120 {
		t.Fatalf("remaining=%d, want 120", s.Remaining)
	}
	if s.Alert != "2 minutes remaining" {
		t.Errorf("alert at green crossing = %q, want \"2 minutes remaining\"", s.Alert)
	}
	if s.Color != domain.ColorGreen {
		t.Errorf("color at 120 = %v, want green", s.Color)
	}

	// Edge-triggered: the next tick must not re-fire the alert.
	gen := c.alertGeneration()
	advance(c, 1)
	if c.alertGeneration() != gen {
		t.Error("alert re-fired below the green threshold")
	}

	// 119 -> 60: the orange crossing.
	advance(c, 59)
	s = c.Snapshot()
	if s.Remaining != 60 {
		t.Fatalf("remaining=%d, want 60", s.Remaining)
	}
	if s.Alert != "1 minute remaining" {
		t.Errorf("alert at orange crossing = %q, want \"1 minute remaining\"", s.Alert)
	}
	if s.Color != domain.ColorOrange {
		t.Errorf("color at 60 = %v, want orange", s.Color)
	}
}

func TestController_CustomDurationAlerts(t *testing.T) {
	c := newManual(domain.SpeechPrepared,
		WithOverride(domain.Clock{Seconds: 50}),
		WithAlertDuration(time.Hour))
	defer c.Close()

	c.Start()

	// ceil(50*0.32)=16, ceil(50*0.16)=8.
	advance(c, 34)
	s := c.Snapshot()
	if s.Remaining != 16 {
		t.Fatalf("remaining=%d, want 16", s.Remaining)
	}
	if s.Alert != "16 seconds remaining" {
		t.Errorf("alert = %q, want \"16 seconds remaining\"", s.Alert)
	}
	if s.Color != domain.ColorGreen {
		t.Errorf("color at 16 = %v, want green", s.Color)
	}

	advance(c, 8)
	s = c.Snapshot()
	if s.Remaining != 8 {
		t.Fatalf("remaining=%d, want 8", s.Remaining)
	}
	if s.Alert != "8 seconds remaining" {
		t.Errorf("alert = %q, want \"8 seconds remaining\"", s.Alert)
	}
	if s.Color != domain.ColorOrange {
		t.Errorf("color at 8 = %v, want orange", s.Color)
	}
}

func TestController_OnAlertFiresPerCrossing(t *testing.T) {
	alerts := make(chan string, 4)
	c := newManual(domain.SpeechImpromptu,
		WithOverride(domain.Clock{Seconds: 50}),
		WithOnAlert(func(msg string) { alerts <- msg }))
	defer c.Close()

	c.Start()
	advance(c, 34) // green crossing at 16
	advance(c, 8)  // orange crossing at 8

	for _, want := range []string{"16 seconds remaining", "8 seconds remaining"} {
		select {
		case got := <-alerts:
			if got != want {
				t.Errorf("alert callback got %q, want %q", got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("alert callback never fired for %q", want)
		}
	}

	// Running down to zero raises the time-up alert but not the
	// threshold callback.
	advance(c, 8)
	select {
	case got := <-alerts:
		t.Errorf("alert callback fired %q at completion", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestController_NaturalCompletion(t *testing.T) {
	var fired atomic.Int32
	c := newManual(domain.SpeechImpromptu,
		WithOverride(domain.Clock{Seconds: 2}),
		WithCompletionDelay(50*time.Millisecond),
		WithOnComplete(func() { fired.Add(1) }))
	defer c.Close()

	c.Start()
	advance(c, 1) // 2 -> 1
	advance(c, 1) // 1 -> 0, completes

	s := c.Snapshot()
	if s.Remaining != 0 {
		t.Errorf("remaining=%d, want exactly 0", s.Remaining)
	}
	if s.Running || s.Paused {
		t.Errorf("after completion: running=%v paused=%v, want idle", s.Running, s.Paused)
	}
	if s.Alert != domain.AlertTimeUp {
		t.Errorf("alert=%q, want %q", s.Alert, domain.AlertTimeUp)
	}
	if s.Color != domain.ColorRed {
		t.Errorf("color=%v, want red", s.Color)
	}
	if c.tickActive() {
		t.Error("periodic source still active after completion")
	}

	// The callback is delayed, not immediate.
	if n := fired.Load(); n != 0 {
		t.Errorf("callback fired %d times immediately, want 0 until the delay passes", n)
	}
	time.Sleep(150 * time.Millisecond)
	if n := fired.Load(); n != 1 {
		t.Errorf("callback fired %d times, want exactly 1", n)
	}

	// Ticks past zero change nothing.
	advance(c, 3)
	if s := c.Snapshot(); s.Remaining != 0 {
		t.Errorf("remaining=%d after extra ticks, want 0", s.Remaining)
	}
}

func TestController_CompletionRecordsRun(t *testing.T) {
	c := newManual(domain.SpeechEvaluative)
	defer c.Close()

	if _, ok := c.LastRun(); ok {
		t.Fatal("LastRun() present before any run")
	}

	c.Start()
	advance(c, 180) // evaluative default 3:00 runs to zero

	run, ok := c.LastRun()
	if !ok {
		t.Fatal("LastRun() missing after completion")
	}
	if !run.Completed {
		t.Error("run.Completed = false, want true")
	}
	if run.PlannedSeconds != 180 || run.ElapsedSeconds != 180 {
		t.Errorf("run planned/elapsed = %d/%d, want 180/180", run.PlannedSeconds, run.ElapsedSeconds)
	}
	if run.SpeechType != domain.SpeechEvaluative {
		t.Errorf("run.SpeechType = %v, want evaluative", run.SpeechType)
	}
}

func TestController_ZeroTotalProgressIsOne(t *testing.T) {
	c := newManual(domain.SpeechImpromptu, WithOverride(domain.Clock{}))
	defer c.Close()

	c.Start()
	advance(c, 1)

	s := c.Snapshot()
	if s.Progress != 1 {
		t.Errorf("progress=%v with total=0, want 1", s.Progress)
	}
	if s.Remaining != 0 {
		t.Errorf("remaining=%d, want 0", s.Remaining)
	}
}

func TestController_PauseResumePreservesRemaining(t *testing.T) {
	c := newManual(domain.SpeechPrepared)
	defer c.Close()

	c.Start()
	advance(c, 5)

	c.Pause()
	s := c.Snapshot()
	if !s.Paused || !s.Running {
		t.Fatalf("after Pause: running=%v paused=%v, want both true", s.Running, s.Paused)
	}
	if s.Remaining != 415 {
		t.Fatalf("remaining=%d after pause, want 415", s.Remaining)
	}
	if c.tickActive() {
		t.Error("periodic source still active while paused")
	}

	// Ticks while paused must not decrement.
	advance(c, 3)
	if got := c.Snapshot().Remaining; got != 415 {
		t.Errorf("remaining=%d after ticks while paused, want 415", got)
	}

	c.Resume()
	s = c.Snapshot()
	if s.Paused {
		t.Error("still paused after Resume")
	}
	if s.Remaining != 415 {
		t.Errorf("remaining=%d after resume, want exactly 415", s.Remaining)
	}
	if !c.tickActive() {
		t.Error("no periodic source after Resume")
	}
}

func TestController_PauseWhileIdleIsNoOp(t *testing.T) {
	c := newManual(domain.SpeechPrepared)
	defer c.Close()

	c.Pause()
	if s := c.Snapshot(); s.Paused {
		t.Error("Pause() while idle set paused")
	}

	c.Resume()
	if s := c.Snapshot(); s.Running {
		t.Error("Resume() while idle set running")
	}
}

func TestController_ResetWhileRunning(t *testing.T) {
	c := newManual(domain.SpeechPrepared, WithOverride(domain.Clock{Seconds: 50}))
	defer c.Close()

	c.Start()
	advance(c, 20)

	c.Reset()

	s := c.Snapshot()
	if !s.Running || s.Paused {
		t.Errorf("after Reset while running: running=%v paused=%v, want running", s.Running, s.Paused)
	}
	// Reset restores the speech type's default, not the override.
	if s.Total != 420 || s.Remaining != 420 {
		t.Errorf("after Reset: total=%d remaining=%d, want 420/420", s.Total, s.Remaining)
	}
	if s.Progress != 1 {
		t.Errorf("after Reset: progress=%v, want 1", s.Progress)
	}
	if s.Color != domain.ColorDefault {
		t.Errorf("after Reset: color=%v, want default", s.Color)
	}
	if !c.tickActive() {
		t.Error("periodic source not restarted by Reset while running")
	}
}

func TestController_ResetWhileIdleStaysIdle(t *testing.T) {
	c := newManual(domain.SpeechImpromptu)
	defer c.Close()

	c.Reset()

	s := c.Snapshot()
	if s.Running || s.Paused {
		t.Errorf("after Reset while idle: running=%v paused=%v, want idle", s.Running, s.Paused)
	}
	if s.Total != 120 || s.Remaining != 120 {
		t.Errorf("after Reset: total=%d remaining=%d, want 120/120", s.Total, s.Remaining)
	}
	if c.tickActive() {
		t.Error("Reset while idle started a periodic source")
	}
}

func TestController_StopReturnsToDefaults(t *testing.T) {
	c := newManual(domain.SpeechPrepared)
	defer c.Close()

	c.Start()
	advance(c, 10)

	c.Stop()

	s := c.Snapshot()
	if s.Running || s.Paused {
		t.Errorf("after Stop: running=%v paused=%v, want idle", s.Running, s.Paused)
	}
	if s.Total != 420 || s.Remaining != 420 {
		t.Errorf("after Stop: total=%d remaining=%d, want 420/420", s.Total, s.Remaining)
	}
	if s.Progress != 1 || s.Color != domain.ColorDefault {
		t.Errorf("after Stop: progress=%v color=%v, want 1/default", s.Progress, s.Color)
	}
	if c.tickActive() {
		t.Error("periodic source still active after Stop")
	}

	run, ok := c.LastRun()
	if !ok {
		t.Fatal("LastRun() missing after Stop")
	}
	if run.Completed {
		t.Error("run.Completed = true for an early stop")
	}
	if run.ElapsedSeconds != 10 || run.PlannedSeconds != 420 {
		t.Errorf("run elapsed/planned = %d/%d, want 10/420", run.ElapsedSeconds, run.PlannedSeconds)
	}
}

func TestController_StopLeavesAlertToItsOwnClear(t *testing.T) {
	c := newManual(domain.SpeechPrepared, WithAlertDuration(40*time.Millisecond))
	defer c.Close()

	c.Start()
	advance(c, 300) // green crossing alert

	c.Stop()

	if got := c.Snapshot().Alert; got != "2 minutes remaining" {
		t.Fatalf("alert=%q right after Stop, want it left showing", got)
	}

	time.Sleep(120 * time.Millisecond)
	if got := c.Snapshot().Alert; got != "" {
		t.Errorf("alert=%q after its auto-clear elapsed, want empty", got)
	}
}

func TestController_NewAlertRestartsAutoClear(t *testing.T) {
	c := newManual(domain.SpeechImpromptu,
		WithOverride(domain.Clock{Seconds: 50}),
		WithAlertDuration(80*time.Millisecond))
	defer c.Close()

	c.Start()
	advance(c, 34) // 16s alert
	time.Sleep(50 * time.Millisecond)
	advance(c, 8) // 8s alert replaces it

	// 50ms later the first alert's clear would have fired; the second
	// alert must still be showing.
	time.Sleep(50 * time.Millisecond)
	if got := c.Snapshot().Alert; got != "8 seconds remaining" {
		t.Errorf("alert=%q, want the replacement still showing", got)
	}

	time.Sleep(80 * time.Millisecond)
	if got := c.Snapshot().Alert; got != "" {
		t.Errorf("alert=%q after auto-clear, want empty", got)
	}
}

func TestController_SettersGatedOnIdle(t *testing.T) {
	c := newManual(domain.SpeechImpromptu)
	defer c.Close()

	// Idle edits apply and re-derive totals.
	c.SetMinutes(1)
	c.SetSeconds(30)
	s := c.Snapshot()
	if s.Total != 90 || s.Remaining != 90 || s.Progress != 1 {
		t.Fatalf("after idle edits: total=%d remaining=%d progress=%v, want 90/90/1", s.Total, s.Remaining, s.Progress)
	}

	c.Start()
	advance(c, 5)
	c.SetMinutes(9)
	c.SetSeconds(9)
	if s := c.Snapshot(); s.Remaining != 85 || s.Total != 90 {
		t.Errorf("edits while running applied: remaining=%d total=%d", s.Remaining, s.Total)
	}

	c.Pause()
	c.SetMinutes(9)
	c.SetSpeechType(domain.SpeechPrepared)
	if s := c.Snapshot(); s.Remaining != 85 || s.SpeechType != domain.SpeechImpromptu {
		t.Errorf("edits while paused applied: remaining=%d type=%v", s.Remaining, s.SpeechType)
	}
}

func TestController_SetSpeechType(t *testing.T) {
	c := newManual(domain.SpeechImpromptu)
	defer c.Close()

	c.SetSpeechType(domain.SpeechPrepared)
	if s := c.Snapshot(); s.Total != 420 {
		t.Errorf("total=%d after type change, want the prepared default 420", s.Total)
	}

	// With an override in effect, the override wins over the default.
	c.SetOverride(&domain.Clock{Minutes: 1})
	c.SetSpeechType(domain.SpeechEvaluative)
	if s := c.Snapshot(); s.Total != 60 {
		t.Errorf("total=%d with override, want 60", s.Total)
	}

	// Clearing the override falls back to the type default.
	c.SetOverride(nil)
	if s := c.Snapshot(); s.Total != 180 {
		t.Errorf("total=%d after clearing override, want evaluative default 180", s.Total)
	}
}

func TestController_HideCountdownHasNoTimingEffect(t *testing.T) {
	c := newManual(domain.SpeechImpromptu)
	defer c.Close()

	c.Start()
	c.SetHideCountdown(true)
	advance(c, 3)

	s := c.Snapshot()
	if !s.HideCountdown {
		t.Error("hideCountdown not set")
	}
	if s.Remaining != 117 {
		t.Errorf("remaining=%d, want 117: hiding must not affect ticking", s.Remaining)
	}
}

func TestController_CloseCancelsCompletionCallback(t *testing.T) {
	var fired atomic.Int32
	c := newManual(domain.SpeechImpromptu,
		WithOverride(domain.Clock{Seconds: 1}),
		WithCompletionDelay(50*time.Millisecond),
		WithOnComplete(func() { fired.Add(1) }))

	c.Start()
	advance(c, 1) // completes, schedules the callback
	c.Close()

	time.Sleep(120 * time.Millisecond)
	if n := fired.Load(); n != 0 {
		t.Errorf("callback fired %d times after Close, want 0", n)
	}
}

func TestController_ControlsAfterCloseAreNoOps(t *testing.T) {
	c := newManual(domain.SpeechImpromptu)
	c.Close()

	c.Start()
	if s := c.Snapshot(); s.Running {
		t.Error("Start() after Close started the timer")
	}
	c.SetMinutes(5)
	if s := c.Snapshot(); s.Total != 120 {
		t.Error("SetMinutes() after Close applied")
	}
}

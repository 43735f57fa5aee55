package integration

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xvierd/podium/internal/adapters/storage"
	"github.com/xvierd/podium/internal/countdown"
	"github.com/xvierd/podium/internal/domain"
	"github.com/xvierd/podium/internal/ports"
	"github.com/xvierd/podium/internal/services"
)

// setupTestStorage creates a temporary file-backed database for
// integration tests.
func setupTestStorage(t *testing.T) ports.Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}

// TestFullRunLifecycle drives a complete timed run with real ticks and
// checks it lands in history.
func TestFullRunLifecycle(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()
	practiceSvc := services.NewPracticeService(store)

	var completions atomic.Int32
	controller := countdown.New(domain.DefaultTimingConfig(), domain.SpeechImpromptu,
		countdown.WithTickInterval(10*time.Millisecond),
		countdown.WithCompletionDelay(10*time.Millisecond),
		countdown.WithOverride(domain.Clock{Seconds: 3}),
		countdown.WithOnComplete(func() { completions.Add(1) }))
	defer controller.Close()

	controller.Start()

	// Let it pause and resume mid-run.
	time.Sleep(15 * time.Millisecond)
	controller.Pause()
	if snap := controller.Snapshot(); !snap.Paused {
		t.Fatal("controller should be paused")
	}
	controller.Resume()

	// Wait for natural completion.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := controller.Snapshot(); snap.Idle() && snap.Remaining == 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	snap := controller.Snapshot()
	if !snap.Idle() || snap.Remaining != 0 {
		t.Fatalf("run did not complete: %+v", snap)
	}
	if snap.Alert != domain.AlertTimeUp {
		t.Errorf("alert = %q, want %q", snap.Alert, domain.AlertTimeUp)
	}

	// The completion callback fires after the configured delay.
	time.Sleep(50 * time.Millisecond)
	if got := completions.Load(); got != 1 {
		t.Errorf("completion callback fired %d times, want 1", got)
	}

	run, ok := controller.LastRun()
	if !ok {
		t.Fatal("controller should report the finished run")
	}
	if !run.Completed {
		t.Error("run should be marked completed")
	}
	if run.PlannedSeconds != 3 || run.ElapsedSeconds != 3 {
		t.Errorf("run seconds = %d/%d, want 3/3", run.ElapsedSeconds, run.PlannedSeconds)
	}

	record, err := practiceSvc.RecordRun(ctx, "Table topic", run)
	if err != nil {
		t.Fatalf("failed to record run: %v", err)
	}

	history, err := practiceSvc.GetHistory(ctx, 1)
	if err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	if len(history) != 1 || history[0].ID != record.ID {
		t.Fatalf("history should hold the recorded run, got %d records", len(history))
	}

	stats, err := practiceSvc.GetStats(ctx)
	if err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if stats.Runs != 1 || stats.Completed != 1 {
		t.Errorf("stats = %d runs / %d completed, want 1/1", stats.Runs, stats.Completed)
	}
}

// TestStoppedRunIsRecordedAsIncomplete stops a run early and checks the
// record keeps the partial elapsed time.
func TestStoppedRunIsRecordedAsIncomplete(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()
	practiceSvc := services.NewPracticeService(store)

	controller := countdown.New(domain.DefaultTimingConfig(), domain.SpeechPrepared,
		countdown.WithTickInterval(5*time.Millisecond))
	defer controller.Close()

	controller.Start()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if controller.Snapshot().Remaining <= 415 {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	controller.Stop()

	run, ok := controller.LastRun()
	if !ok {
		t.Fatal("controller should report the stopped run")
	}
	if run.Completed {
		t.Error("stopped run should not be marked completed")
	}
	if run.ElapsedSeconds < 5 {
		t.Errorf("elapsed = %d, want at least 5", run.ElapsedSeconds)
	}

	if _, err := practiceSvc.RecordRun(ctx, "cut short", run); err != nil {
		t.Fatalf("failed to record run: %v", err)
	}

	stats, err := practiceSvc.GetStats(ctx)
	if err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if stats.Runs != 1 || stats.Completed != 0 {
		t.Errorf("stats = %d runs / %d completed, want 1/0", stats.Runs, stats.Completed)
	}
}

// TestSearchAcrossRecordedRuns exercises the fuzzy search end to end.
func TestSearchAcrossRecordedRuns(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()
	practiceSvc := services.NewPracticeService(store)

	titles := []string{"Icebreaker", "Visual aids talk", "Project evaluation"}
	for _, title := range titles {
		_, err := practiceSvc.RecordRun(ctx, title, countdown.RunSummary{
			SpeechType:     domain.SpeechPrepared,
			PlannedSeconds: 420,
			ElapsedSeconds: 300,
			StartedAt:      time.Now().UTC(),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	results, err := practiceSvc.SearchHistory(ctx, "visl")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Visual aids talk" {
		t.Errorf("search should find the visual aids talk, got %d results", len(results))
	}
}

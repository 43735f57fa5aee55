package domain

import "time"

// SpeechRecord is one finished practice run, kept for history.
// The live timer itself is never persisted; a record is written only
// when a run ends, whether it ran down to zero or was stopped early.
type SpeechRecord struct {
	ID             string
	Title          string
	Type           SpeechType
	PlannedSeconds int
	ElapsedSeconds int
	Completed      bool
	StartedAt      time.Time
	FinishedAt     time.Time
}

// NewSpeechRecord creates a record for a run that just ended.
func NewSpeechRecord(title string, t SpeechType, planned, elapsed int, completed bool, startedAt time.Time) *SpeechRecord {
	return &SpeechRecord{
		ID:             generateID(),
		Title:          title,
		Type:           t,
		PlannedSeconds: planned,
		ElapsedSeconds: elapsed,
		Completed:      completed,
		StartedAt:      startedAt,
		FinishedAt:     time.Now(),
	}
}

// Planned returns the configured duration as a clock.
func (r *SpeechRecord) Planned() Clock {
	return ClockFromSeconds(r.PlannedSeconds)
}

// Elapsed returns the practiced time as a clock.
func (r *SpeechRecord) Elapsed() Clock {
	return ClockFromSeconds(r.ElapsedSeconds)
}

// PracticeStats aggregates speech history.
type PracticeStats struct {
	Runs          int
	Completed     int
	TotalPractice time.Duration
	RunsByType    map[SpeechType]int
}

// Package services contains the application use cases that sit between
// the command layer and the driven ports.
package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xvierd/podium/internal/countdown"
	"github.com/xvierd/podium/internal/domain"
	"github.com/xvierd/podium/internal/ports"
)

// PracticeService handles speech practice use cases: recording finished
// runs and querying the practice history.
type PracticeService struct {
	storage ports.Storage
}

// NewPracticeService creates a new practice service.
func NewPracticeService(storage ports.Storage) *PracticeService {
	return &PracticeService{storage: storage}
}

// RecordRun persists a run that just ended.
func (s *PracticeService) RecordRun(ctx context.Context, title string, run countdown.RunSummary) (*domain.SpeechRecord, error) {
	record := domain.NewSpeechRecord(
		title,
		run.SpeechType,
		run.PlannedSeconds,
		run.ElapsedSeconds,
		run.Completed,
		run.StartedAt,
	)

	if err := s.storage.Speeches().Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	return record, nil
}

// GetHistory retrieves runs from the last given number of days,
// newest first.
func (s *PracticeService) GetHistory(ctx context.Context, days int) ([]*domain.SpeechRecord, error) {
	since := time.Now().AddDate(0, 0, -days)
	return s.storage.Speeches().FindRecent(ctx, since)
}

// SearchHistory performs a fuzzy title search over all runs.
func (s *PracticeService) SearchHistory(ctx context.Context, query string) ([]*domain.SpeechRecord, error) {
	return s.storage.Speeches().Search(ctx, query)
}

// DeleteRecord removes a run from history.
func (s *PracticeService) DeleteRecord(ctx context.Context, id string) error {
	return s.storage.Speeches().Delete(ctx, id)
}

// GetStats returns aggregated practice statistics.
func (s *PracticeService) GetStats(ctx context.Context) (*domain.PracticeStats, error) {
	return s.storage.Speeches().GetStats(ctx)
}

// ExportJSON writes the full history as a JSON array.
func (s *PracticeService) ExportJSON(ctx context.Context, w io.Writer) error {
	records, err := s.storage.Speeches().Search(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// ExportCSV writes the full history as CSV with a header row.
func (s *PracticeService) ExportCSV(ctx context.Context, w io.Writer) error {
	records, err := s.storage.Speeches().Search(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"id", "title", "type", "planned_seconds", "elapsed_seconds", "completed", "started_at", "finished_at"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.Title,
			string(r.Type),
			strconv.Itoa(r.PlannedSeconds),
			strconv.Itoa(r.ElapsedSeconds),
			strconv.FormatBool(r.Completed),
			r.StartedAt.Format(time.RFC3339),
			r.FinishedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

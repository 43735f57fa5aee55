package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/podium/internal/domain"
	"github.com/xvierd/podium/internal/ports"
)

// historyRepository implements ports.HistoryRepository using SQLite.
type historyRepository struct {
	db *sql.DB
}

// newHistoryRepository creates a new speech history repository.
func newHistoryRepository(db *sql.DB) ports.HistoryRepository {
	return &historyRepository{db: db}
}

// Save persists a finished run to storage.
func (r *historyRepository) Save(ctx context.Context, record *domain.SpeechRecord) error {
	query := `
		INSERT INTO speeches (
			id, title, speech_type, planned_seconds, elapsed_seconds,
			completed, started_at, finished_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Title,
		string(record.Type),
		record.PlannedSeconds,
		record.ElapsedSeconds,
		record.Completed,
		record.StartedAt,
		record.FinishedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save speech record: %w", err)
	}

	return nil
}

// FindByID retrieves a record by its unique identifier.
func (r *historyRepository) FindByID(ctx context.Context, id string) (*domain.SpeechRecord, error) {
	query := `
		SELECT id, title, speech_type, planned_seconds, elapsed_seconds,
		       completed, started_at, finished_at
		FROM speeches
		WHERE id = ?
	`

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}
	return record, nil
}

// FindRecent retrieves records finished since the given time, newest first.
func (r *historyRepository) FindRecent(ctx context.Context, since time.Time) ([]*domain.SpeechRecord, error) {
	query := `
		SELECT id, title, speech_type, planned_seconds, elapsed_seconds,
		       completed, started_at, finished_at
		FROM speeches
		WHERE finished_at >= ?
		ORDER BY finished_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent speeches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

// Search performs a fuzzy title match over all records. Results come
// back in match-quality order, best first.
func (r *historyRepository) Search(ctx context.Context, query string) ([]*domain.SpeechRecord, error) {
	all, err := r.findAll(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	titles := make([]string, len(all))
	for i, record := range all {
		titles[i] = record.Title
	}

	matches := fuzzy.Find(query, titles)
	results := make([]*domain.SpeechRecord, 0, len(matches))
	for _, m := range matches {
		results = append(results, all[m.Index])
	}

	return results, nil
}

// Delete removes a record.
func (r *historyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM speeches WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete speech record: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// GetStats returns aggregated practice statistics.
func (r *historyRepository) GetStats(ctx context.Context) (*domain.PracticeStats, error) {
	stats := &domain.PracticeStats{
		RunsByType: make(map[domain.SpeechType]int),
	}

	query := `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN completed THEN 1 END),
			COALESCE(SUM(elapsed_seconds), 0)
		FROM speeches
	`

	var totalSeconds int64
	if err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Runs,
		&stats.Completed,
		&totalSeconds,
	); err != nil {
		return nil, fmt.Errorf("failed to get practice stats: %w", err)
	}
	stats.TotalPractice = time.Duration(totalSeconds) * time.Second

	byTypeQuery := `
		SELECT speech_type, COUNT(*)
		FROM speeches
		GROUP BY speech_type
	`

	rows, err := r.db.QueryContext(ctx, byTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats by type: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var typeStr string
		var count int
		if err := rows.Scan(&typeStr, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats by type: %w", err)
		}
		stats.RunsByType[domain.SpeechType(typeStr)] = count
	}

	return stats, rows.Err()
}

// findAll retrieves every record, newest first.
func (r *historyRepository) findAll(ctx context.Context) ([]*domain.SpeechRecord, error) {
	query := `
		SELECT id, title, speech_type, planned_seconds, elapsed_seconds,
		       completed, started_at, finished_at
		FROM speeches
		ORDER BY finished_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query speeches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

// scanRecord scans a single record row. Returns nil without error when
// no row matched.
func scanRecord(row *sql.Row) (*domain.SpeechRecord, error) {
	var record domain.SpeechRecord
	var typeStr string

	err := row.Scan(
		&record.ID,
		&record.Title,
		&typeStr,
		&record.PlannedSeconds,
		&record.ElapsedSeconds,
		&record.Completed,
		&record.StartedAt,
		&record.FinishedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	record.Type = domain.SpeechType(typeStr)
	return &record, nil
}

// scanRecords scans multiple record rows.
func scanRecords(rows *sql.Rows) ([]*domain.SpeechRecord, error) {
	var records []*domain.SpeechRecord

	for rows.Next() {
		var record domain.SpeechRecord
		var typeStr string

		err := rows.Scan(
			&record.ID,
			&record.Title,
			&typeStr,
			&record.PlannedSeconds,
			&record.ElapsedSeconds,
			&record.Completed,
			&record.StartedAt,
			&record.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan speech record: %w", err)
		}

		record.Type = domain.SpeechType(typeStr)
		records = append(records, &record)
	}

	return records, rows.Err()
}

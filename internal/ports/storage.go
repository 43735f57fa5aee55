// Package ports defines the interfaces (driven and driving ports)
// between the podium domain layer and external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/podium/internal/domain"
)

// HistoryRepository defines the interface for speech-record persistence.
// This is a driven port (implemented by adapters).
type HistoryRepository interface {
	// Save persists a finished run.
	Save(ctx context.Context, record *domain.SpeechRecord) error

	// FindByID retrieves a record by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.SpeechRecord, error)

	// FindRecent retrieves records finished since the given time,
	// newest first.
	FindRecent(ctx context.Context, since time.Time) ([]*domain.SpeechRecord, error)

	// Search performs a fuzzy title search over all records.
	Search(ctx context.Context, query string) ([]*domain.SpeechRecord, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// GetStats returns aggregated practice statistics.
	GetStats(ctx context.Context) (*domain.PracticeStats, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Speeches provides access to speech history operations.
	Speeches() HistoryRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}

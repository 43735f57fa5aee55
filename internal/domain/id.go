package domain

import "github.com/google/uuid"

// generateID creates a unique identifier for a speech record.
func generateID() string {
	return uuid.New().String()
}

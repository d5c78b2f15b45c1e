package repository

import (
	"context"
	"time"

	"vdcode/internal/domain"
	"vdcode/internal/shortcode"
)

// Repository defines the contract for issued code storage.
// All implementations must be thread-safe for concurrent access.
type Repository interface {
	// SaveIfNotExists atomically saves the record only if its code
	// isn't issued yet. Returns domain.ErrCodeExists if taken.
	SaveIfNotExists(ctx context.Context, record *domain.CodeRecord) error

	// FindByCode retrieves a record by its code.
	// Returns domain.ErrNotFound if the code doesn't exist.
	FindByCode(ctx context.Context, code shortcode.Code) (*domain.CodeRecord, error)

	// IncrementLookupCount atomically increments the lookup counter
	// and updates LastLookupAt.
	// Returns domain.ErrNotFound if the code doesn't exist.
	IncrementLookupCount(ctx context.Context, code shortcode.Code, at time.Time) error

	// DeleteExpired removes all records where ExpiresAt < before.
	// Returns the number of deleted records.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

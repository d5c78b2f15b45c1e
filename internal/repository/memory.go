package repository

import (
	"context"
	"sync"
	"time"

	"vdcode/internal/domain"
	"vdcode/internal/shortcode"
)

// MemoryRepository keeps records in a map guarded by a RWMutex.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]*domain.CodeRecord
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]*domain.CodeRecord),
	}
}

func (r *MemoryRepository) SaveIfNotExists(ctx context.Context, record *domain.CodeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := record.Code.String()
	if _, exists := r.data[key]; exists {
		return domain.ErrCodeExists
	}

	r.data[key] = record.Clone()
	return nil
}

func (r *MemoryRepository) FindByCode(ctx context.Context, code shortcode.Code) (*domain.CodeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.data[code.String()]
	if !exists {
		return nil, domain.ErrNotFound
	}

	return record.Clone(), nil
}

func (r *MemoryRepository) IncrementLookupCount(ctx context.Context, code shortcode.Code, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.data[code.String()]
	if !exists {
		return domain.ErrNotFound
	}

	record.LookupCount++
	record.LastLookupAt = at
	return nil
}

func (r *MemoryRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for key, record := range r.data {
		if record.ExpiresAt.Before(before) {
			delete(r.data, key)
			deleted++
		}
	}

	return deleted, nil
}

// Len returns the number of stored records.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

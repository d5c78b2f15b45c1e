package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"vdcode/internal/domain"
	"vdcode/internal/shortcode"
)

// PgxQuerier is the part of pgxpool.Pool (or pgx.Tx) the repository uses.
type PgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores records in the codes table created by the
// db package migrations.
type PostgresRepository struct {
	db PgxQuerier
}

// NewPostgresRepository creates a repository on top of a pool or transaction.
func NewPostgresRepository(db PgxQuerier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SaveIfNotExists(ctx context.Context, record *domain.CodeRecord) error {
	const query = `INSERT INTO codes (code, label, created_at, expires_at, lookup_count, last_lookup_at)
	               VALUES ($1, $2, $3, $4, $5, $6)
	               ON CONFLICT (code) DO NOTHING`

	tag, err := r.db.Exec(ctx, query,
		record.Code.String(), record.Label, record.CreatedAt, record.ExpiresAt,
		record.LookupCount, nullTime(record.LastLookupAt))
	if err != nil {
		return fmt.Errorf("inserting code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCodeExists
	}
	return nil
}

func (r *PostgresRepository) FindByCode(ctx context.Context, code shortcode.Code) (*domain.CodeRecord, error) {
	const query = `SELECT code, label, created_at, expires_at, lookup_count, last_lookup_at
	               FROM codes WHERE code = $1`

	var (
		raw        string
		record     domain.CodeRecord
		lastLookup *time.Time
	)
	err := r.db.QueryRow(ctx, query, code.String()).Scan(
		&raw, &record.Label, &record.CreatedAt, &record.ExpiresAt, &record.LookupCount, &lastLookup)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting code: %w", err)
	}

	// stored values are re-validated so a bad row never leaves the repository
	if record.Code, err = shortcode.Parse(raw); err != nil {
		return nil, fmt.Errorf("stored code %q: %w", raw, err)
	}
	record.CreatedAt = record.CreatedAt.UTC()
	record.ExpiresAt = record.ExpiresAt.UTC()
	if lastLookup != nil {
		record.LastLookupAt = lastLookup.UTC()
	}

	return &record, nil
}

func (r *PostgresRepository) IncrementLookupCount(ctx context.Context, code shortcode.Code, at time.Time) error {
	const query = `UPDATE codes SET lookup_count = lookup_count + 1, last_lookup_at = $2 WHERE code = $1`

	tag, err := r.db.Exec(ctx, query, code.String(), at)
	if err != nil {
		return fmt.Errorf("updating lookups: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM codes WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("deleting expired: %w", err)
	}
	return tag.RowsAffected(), nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

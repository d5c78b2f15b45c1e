package repository_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"vdcode/internal/db"
	"vdcode/internal/repository"

	"github.com/stretchr/testify/require"
)

// TestPostgresRepository_Contract runs against a real database when
// VDCODE_TEST_PG_URL is set.
func TestPostgresRepository_Contract(t *testing.T) {
	url := os.Getenv("VDCODE_TEST_PG_URL")
	if url == "" {
		t.Skip("VDCODE_TEST_PG_URL not set")
	}

	ctx := context.Background()
	pool, err := db.ConnectPostgres(ctx, db.PostgresConfig{
		ConnectionString: url,
		MaxConns:         4,
		MinConns:         1,
		RetryAttempts:    1,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool, slog.New(slog.DiscardHandler)))

	runContract(t, func(t *testing.T) repository.Repository {
		_, err := pool.Exec(ctx, `TRUNCATE codes`)
		require.NoError(t, err)
		return repository.NewPostgresRepository(pool)
	})
}

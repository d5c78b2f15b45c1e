package repository_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vdcode/internal/domain"
	"vdcode/internal/repository"
	"vdcode/internal/shortcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func newRecord(code string) *domain.CodeRecord {
	return &domain.CodeRecord{
		Code:      shortcode.MustParse(code),
		Label:     "label " + code,
		CreatedAt: baseTime,
		ExpiresAt: baseTime.Add(time.Hour),
	}
}

// runContract exercises behaviour every Repository must share.
func runContract(t *testing.T, newRepo func(t *testing.T) repository.Repository) {
	t.Run("SaveAndFind", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.SaveIfNotExists(ctx, newRecord("AB29XY")))

		found, err := repo.FindByCode(ctx, shortcode.MustParse("AB29XY"))
		require.NoError(t, err)
		assert.Equal(t, "AB29XY", found.Code.String())
		assert.Equal(t, "label AB29XY", found.Label)
		assert.True(t, baseTime.Equal(found.CreatedAt))
		assert.True(t, baseTime.Add(time.Hour).Equal(found.ExpiresAt))
		assert.Zero(t, found.LookupCount)
		assert.True(t, found.LastLookupAt.IsZero())
	})

	t.Run("DeleteExpiredBelowMillisecond", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		record := newRecord("Q4V")
		record.ExpiresAt = baseTime.Add(500 * time.Microsecond)
		require.NoError(t, repo.SaveIfNotExists(ctx, record))

		deleted, err := repo.DeleteExpired(ctx, baseTime.Add(400*time.Microsecond))
		require.NoError(t, err)
		assert.Zero(t, deleted)

		deleted, err = repo.DeleteExpired(ctx, baseTime.Add(900*time.Microsecond))
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		_, err = repo.FindByCode(ctx, record.Code)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("SaveDuplicate", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.SaveIfNotExists(ctx, newRecord("AB29XY")))

		second := newRecord("AB29XY")
		second.Label = "different"
		assert.ErrorIs(t, repo.SaveIfNotExists(ctx, second), domain.ErrCodeExists)

		found, err := repo.FindByCode(ctx, shortcode.MustParse("AB29XY"))
		require.NoError(t, err)
		assert.Equal(t, "label AB29XY", found.Label)
	})

	t.Run("FindNotFound", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindByCode(context.Background(), shortcode.MustParse("NQTX"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("IncrementLookupCount", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		code := shortcode.MustParse("K2Z7")
		require.NoError(t, repo.SaveIfNotExists(ctx, newRecord("K2Z7")))

		at := baseTime.Add(10 * time.Minute)
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.IncrementLookupCount(ctx, code, at))
		}

		found, err := repo.FindByCode(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, int64(3), found.LookupCount)
		assert.True(t, at.Equal(found.LastLookupAt))
	})

	t.Run("IncrementNotFound", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.IncrementLookupCount(context.Background(), shortcode.MustParse("NQTX"), baseTime)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("IncrementConcurrent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		code := shortcode.MustParse("K2Z7")
		require.NoError(t, repo.SaveIfNotExists(ctx, newRecord("K2Z7")))

		const numGoroutines = 20
		const incrementsPerGoroutine = 25

		var wg sync.WaitGroup
		wg.Add(numGoroutines)
		for i := 0; i < numGoroutines; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < incrementsPerGoroutine; j++ {
					assert.NoError(t, repo.IncrementLookupCount(ctx, code, baseTime))
				}
			}()
		}
		wg.Wait()

		found, err := repo.FindByCode(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, int64(numGoroutines*incrementsPerGoroutine), found.LookupCount)
	})

	t.Run("SaveConcurrentCollision", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		const numGoroutines = 20
		var successCount, collisionCount int32

		var wg sync.WaitGroup
		wg.Add(numGoroutines)
		for i := 0; i < numGoroutines; i++ {
			go func() {
				defer wg.Done()
				err := repo.SaveIfNotExists(ctx, newRecord("SAMECD"))
				if err == nil {
					atomic.AddInt32(&successCount, 1)
				} else if errors.Is(err, domain.ErrCodeExists) {
					atomic.AddInt32(&collisionCount, 1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), successCount)
		assert.Equal(t, int32(numGoroutines-1), collisionCount)
	})

	t.Run("DeleteExpired", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		records := []*domain.CodeRecord{
			{Code: shortcode.MustParse("EXPA"), ExpiresAt: baseTime.Add(-time.Hour)},
			{Code: shortcode.MustParse("EXPB"), ExpiresAt: baseTime.Add(-time.Minute)},
			{Code: shortcode.MustParse("VALA"), ExpiresAt: baseTime.Add(time.Hour)},
			{Code: shortcode.MustParse("VALB"), ExpiresAt: baseTime.Add(time.Minute)},
		}
		for _, r := range records {
			r.CreatedAt = baseTime.Add(-2 * time.Hour)
			require.NoError(t, repo.SaveIfNotExists(ctx, r))
		}

		deleted, err := repo.DeleteExpired(ctx, baseTime)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		for _, code := range []string{"EXPA", "EXPB"} {
			_, err := repo.FindByCode(ctx, shortcode.MustParse(code))
			assert.ErrorIs(t, err, domain.ErrNotFound, code)
		}
		for _, code := range []string{"VALA", "VALB"} {
			_, err := repo.FindByCode(ctx, shortcode.MustParse(code))
			assert.NoError(t, err, code)
		}

		deleted, err = repo.DeleteExpired(ctx, baseTime)
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})

	t.Run("DeleteExpiredEmpty", func(t *testing.T) {
		repo := newRepo(t)

		deleted, err := repo.DeleteExpired(context.Background(), baseTime)
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})
}

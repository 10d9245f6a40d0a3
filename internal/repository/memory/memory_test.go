package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yemsy26/comercio-fenix-v1/internal/repository"
)

func TestRepository_GetStock(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	repo.Seed("p1", 20)

	stock, err := repo.GetStock(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(20), stock)

	_, err = repo.GetStock(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRepository_ReduceStock(t *testing.T) {
	ctx := context.Background()

	t.Run("reduces stock and returns remaining", func(t *testing.T) {
		repo := NewRepository()
		repo.Seed("p1", 20)

		remaining, err := repo.ReduceStock(ctx, "p1", 5)
		require.NoError(t, err)
		require.Equal(t, int64(15), remaining)

		stock, err := repo.GetStock(ctx, "p1")
		require.NoError(t, err)
		require.Equal(t, int64(15), stock)
	})

	t.Run("unknown product leaves nothing behind", func(t *testing.T) {
		repo := NewRepository()

		_, err := repo.ReduceStock(ctx, "missing", 5)
		require.ErrorIs(t, err, repository.ErrNotFound)

		_, err = repo.GetStock(ctx, "missing")
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("insufficient stock keeps the stored value unchanged", func(t *testing.T) {
		repo := NewRepository()
		repo.Seed("p1", 3)

		_, err := repo.ReduceStock(ctx, "p1", 5)
		require.ErrorIs(t, err, repository.ErrInsufficientStock)

		stock, err := repo.GetStock(ctx, "p1")
		require.NoError(t, err)
		require.Equal(t, int64(3), stock)
	})
}

// Два конкурентных списания по 6 из остатка 10: ровно одно должно пройти,
// остаток не может уйти в минус
func TestRepository_ReduceStock_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	repo.Seed("p1", 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.ReduceStock(ctx, "p1", 6)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, repository.ErrInsufficientStock)
		}
	}
	require.Equal(t, 1, succeeded)

	stock, err := repo.GetStock(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(4), stock)
}

// Много конкурентных списаний: суммарно нельзя списать больше, чем было
func TestRepository_ReduceStock_ConcurrentMany(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	repo.Seed("p1", 100)

	const workers = 50

	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.ReduceStock(ctx, "p1", 3)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	// 100 / 3 = 33 полных списания, дальше только ErrInsufficientStock
	require.Equal(t, 33, succeeded)

	stock, err := repo.GetStock(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(1), stock)
}

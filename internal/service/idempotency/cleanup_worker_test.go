package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamestorelab/gamestore/internal/domain"
	"github.com/gamestorelab/gamestore/internal/storage/memory"
)

// batchedRepo отдаёт заранее заданные размеры порций DeleteExpired.
type batchedRepo struct {
	domain.IdempotencyRepository
	batches []int
	calls   int
	err     error
}

func (r *batchedRepo) DeleteExpired(time.Time, int) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.calls >= len(r.batches) {
		return 0, nil
	}
	deleted := r.batches[r.calls]
	r.calls++
	return deleted, nil
}

func TestDeleteExpiredDrainsInBatches(t *testing.T) {
	repo := &batchedRepo{batches: []int{3, 3, 1}}
	worker := NewCleanupWorker(repo,
		WithLogger(log.New().WithField("component", "cleanup-test")),
		WithBatchSize(3),
	)

	deleted, err := worker.DeleteExpired(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 7, deleted)
	// Полные порции продолжают проход, неполная завершает его.
	assert.Equal(t, 3, repo.calls)
}

func TestDeleteExpiredStopsOnError(t *testing.T) {
	boom := errors.New("connection reset")
	worker := NewCleanupWorker(&batchedRepo{err: boom}, WithBatchSize(10))

	_, err := worker.DeleteExpired(context.Background(), time.Now().UTC())
	assert.ErrorIs(t, err, boom)
}

func TestDeleteExpiredHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	worker := NewCleanupWorker(&batchedRepo{batches: []int{5}}, WithBatchSize(5))
	_, err := worker.DeleteExpired(ctx, time.Now().UTC())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeleteExpiredOverMemoryRepository(t *testing.T) {
	repo := memory.NewIdempotencyRepository()
	now := time.Now().UTC()

	_, err := repo.CreateProcessing("stale-1", "h1", now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = repo.CreateProcessing("stale-2", "h2", now.Add(-time.Minute))
	require.NoError(t, err)
	_, err = repo.CreateProcessing("fresh", "h3", now.Add(time.Hour))
	require.NoError(t, err)

	worker := NewCleanupWorker(repo, WithBatchSize(1))
	deleted, err := worker.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	_, err = repo.Get("fresh")
	assert.NoError(t, err)
	_, err = repo.Get("stale-1")
	assert.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)
}

func TestRunStopsOnCancel(t *testing.T) {
	worker := NewCleanupWorker(memory.NewIdempotencyRepository(), WithInterval(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

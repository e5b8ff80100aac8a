package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingCleaner struct {
	calls atomic.Int32
	err   error
}

func (c *countingCleaner) CleanupExpired(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestRunExpiryCleanup(t *testing.T) {
	t.Run("runs on every tick until cancelled", func(t *testing.T) {
		cleaner := &countingCleaner{}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			RunExpiryCleanup(ctx, cleaner, 5*time.Millisecond)
		}()

		assert.Eventually(t, func() bool { return cleaner.calls.Load() >= 3 }, time.Second, time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("cleanup loop did not stop after cancel")
		}
	})

	t.Run("keeps running after a failure", func(t *testing.T) {
		cleaner := &countingCleaner{err: errors.New("db down")}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go RunExpiryCleanup(ctx, cleaner, 5*time.Millisecond)

		assert.Eventually(t, func() bool { return cleaner.calls.Load() >= 2 }, time.Second, time.Millisecond)
	})
}

func TestPostgresStore_IsExpiryCleaner(t *testing.T) {
	var _ ExpiryCleaner = (*PostgresStore)(nil)
	_, isCleaner := Store(NewMemoryStore()).(ExpiryCleaner)
	assert.False(t, isCleaner)
}

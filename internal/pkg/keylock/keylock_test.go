//go:build unit

package keylock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"order-fulfillment/internal/pkg/keylock"
	"order-fulfillment/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ shared.Locker = (*keylock.KeyLock)(nil)

func TestKeyLock(t *testing.T) {
	t.Run("serializes holders of the same key", func(t *testing.T) {
		l := keylock.New()
		counter := 0
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := l.Lock(context.Background(), "order:1")
				if err != nil {
					return
				}
				v := counter
				time.Sleep(time.Microsecond)
				counter = v + 1
				unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, 50, counter)
		assert.Zero(t, l.Len())
	})

	t.Run("different keys do not block each other", func(t *testing.T) {
		l := keylock.New()
		unlockA, err := l.Lock(context.Background(), "a")
		require.NoError(t, err)
		defer unlockA()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		unlockB, err := l.Lock(ctx, "b")
		require.NoError(t, err)
		unlockB()
	})

	t.Run("gives up when the context ends", func(t *testing.T) {
		l := keylock.New()
		unlock, err := l.Lock(context.Background(), "a")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = l.Lock(ctx, "a")
		require.ErrorIs(t, err, context.DeadlineExceeded)

		unlock()
		assert.Zero(t, l.Len())
	})

	t.Run("unlock is idempotent", func(t *testing.T) {
		l := keylock.New()
		unlock, err := l.Lock(context.Background(), "a")
		require.NoError(t, err)
		unlock()
		unlock()

		again, err := l.Lock(context.Background(), "a")
		require.NoError(t, err)
		again()
	})
}

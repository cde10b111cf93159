package ledger

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"stakegate.io/stakegate/lib/errors"
)

func TestGuardAcquireRelease(t *testing.T) {
	g := NewGuard()
	require.False(t, g.Held())

	require.NoError(t, g.TryAcquire())
	require.True(t, g.Held())

	// a second acquire while held must fail fast
	require.Equal(t, errors.Reentrant, g.TryAcquire())

	g.Release()
	require.False(t, g.Held())

	// the latch is reusable after release
	require.NoError(t, g.TryAcquire())
	g.Release()
}

func TestGuardReleaseIdle(t *testing.T) {
	g := NewGuard()

	g.Release()
	require.False(t, g.Held())
	require.NoError(t, g.TryAcquire())
}

func TestGuardExclusive(t *testing.T) {
	g := NewGuard()

	var acquired int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire() == nil {
				atomic.AddInt32(&acquired, 1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), acquired)

	g.Release()
	require.NoError(t, g.TryAcquire())
}

package ledger

import (
	"sync/atomic"

	"stakegate.io/stakegate/lib/errors"
)

// Guard is the single flag latch held around outbound transfers. Any
// mutating submission arriving while it is held fails fast with
// Reentrant instead of queueing, since a queued submission could be
// the very callback the in-flight transfer is waiting on.
//
// The latch lives in memory only. A persisted latch would survive a
// crash mid transfer and leave the ledger permanently refusing
// operations; here the latch dies with the process, together with the
// uncommitted storage transaction it was protecting.
type Guard struct {
	held int32
}

func NewGuard() *Guard {
	return &Guard{}
}

// TryAcquire takes the latch, failing with `Reentrant` when it is
// already held.
func (g *Guard) TryAcquire() error {
	if !atomic.CompareAndSwapInt32(&g.held, 0, 1) {
		return errors.Reentrant
	}
	return nil
}

// Release frees the latch. Releasing an idle guard is harmless.
func (g *Guard) Release() {
	atomic.StoreInt32(&g.held, 0)
}

func (g *Guard) Held() bool {
	return atomic.LoadInt32(&g.held) == 1
}

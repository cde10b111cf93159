package transfer

import (
	"stakegate.io/stakegate/lib/common"
)

// Agent is the outbound asset primitive. The ledger tracks stakes;
// the agent holds and moves the underlying value. Unstake payouts and
// excess recovery go through Transfer, and excess recovery sizes
// itself against HeldBalance.
type Agent interface {
	// Transfer pays `amount` out to `to`. A non-nil error means the
	// value did not move; the caller decides what happens to the
	// ledger mutations already made.
	Transfer(to string, amount common.Amount) error

	// HeldBalance reports the total value the agent currently holds
	// on behalf of the ledger.
	HeldBalance() (common.Amount, error)
}

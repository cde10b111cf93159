package transfer

import (
	"sync"

	"stakegate.io/stakegate/lib/common"
)

type TestTransfer struct {
	To     string
	Amount common.Amount
}

// TestAgent is the controllable in-memory Agent for tests: inject
// failures through FailWith/QueryFailWith, observe payouts through
// Transfers, and hook reentrant submissions through OnTransfer.
type TestAgent struct {
	Held          common.Amount
	FailWith      error
	QueryFailWith error

	// OnTransfer runs inside Transfer before anything is recorded; a
	// non-nil result fails the transfer.
	OnTransfer func(to string, amount common.Amount) error

	mutex     sync.Mutex
	transfers []TestTransfer
}

func NewTestAgent(held common.Amount) *TestAgent {
	return &TestAgent{Held: held}
}

func (a *TestAgent) Transfer(to string, amount common.Amount) error {
	if a.OnTransfer != nil {
		if err := a.OnTransfer(to, amount); err != nil {
			return err
		}
	}
	if a.FailWith != nil {
		return a.FailWith
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.transfers = append(a.transfers, TestTransfer{To: to, Amount: amount})
	if amount <= a.Held {
		a.Held = a.Held.MustSub(amount)
	}

	return nil
}

func (a *TestAgent) HeldBalance() (common.Amount, error) {
	if a.QueryFailWith != nil {
		return common.Amount(0), a.QueryFailWith
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	return a.Held, nil
}

func (a *TestAgent) Transfers() []TestTransfer {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	transfers := make([]TestTransfer, len(a.transfers))
	copy(transfers, a.transfers)
	return transfers
}

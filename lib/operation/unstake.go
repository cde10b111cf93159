package operation

import (
	"encoding/json"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
)

// Unstake debits the envelope source's collateral balance and pays the
// amount back out through the transfer agent. The membership flag is
// re-evaluated against the post-debit balance before the payout.
type Unstake struct {
	Amount common.Amount `json:"amount"`
}

func NewUnstake(amount common.Amount) Unstake {
	return Unstake{
		Amount: amount,
	}
}

func (o Unstake) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o Unstake) IsWellFormed(common.Config) (err error) {
	if o.Amount < 1 {
		return errors.ZeroAmount
	}
	if o.Amount > common.MaximumBalance {
		return errors.MaximumBalanceReached
	}

	return
}

func (o Unstake) GetAmount() common.Amount {
	return o.Amount
}

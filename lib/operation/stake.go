package operation

import (
	"encoding/json"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
)

// Stake credits the envelope source's collateral balance. It never
// changes the membership flag on its own.
type Stake struct {
	Amount common.Amount `json:"amount"`
}

func NewStake(amount common.Amount) Stake {
	return Stake{
		Amount: amount,
	}
}

func (o Stake) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o Stake) IsWellFormed(common.Config) (err error) {
	if o.Amount < 1 {
		return errors.ZeroAmount
	}
	if o.Amount > common.MaximumBalance {
		return errors.MaximumBalanceReached
	}

	return
}

func (o Stake) GetAmount() common.Amount {
	return o.Amount
}

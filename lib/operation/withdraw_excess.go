package operation

import (
	"encoding/json"
	"fmt"

	"github.com/stellar/go/keypair"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
)

// WithdrawExcess recovers value held by the ledger that is not
// attributable to any tracked stake, e.g. funds sent to it directly by
// accident. Because accounts cannot be enumerated, the caller must
// supply the roster of addresses whose balances make up the tracked
// total; without one the operation refuses to run. Administrator only.
type WithdrawExcess struct {
	Target string        `json:"target"`
	Amount common.Amount `json:"amount"`
	Roster []string      `json:"roster"`
}

func NewWithdrawExcess(target string, amount common.Amount, roster []string) WithdrawExcess {
	return WithdrawExcess{
		Target: target,
		Amount: amount,
		Roster: roster,
	}
}

func (o WithdrawExcess) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o WithdrawExcess) IsWellFormed(common.Config) (err error) {
	if len(o.Target) < 1 {
		return errors.ZeroIdentity
	}
	if _, err = keypair.Parse(o.Target); err != nil {
		return errors.BadPublicAddress
	}
	if o.Amount < 1 {
		return errors.ZeroAmount
	}
	if o.Amount > common.MaximumBalance {
		return errors.MaximumBalanceReached
	}

	var seen []string
	for _, address := range o.Roster {
		if _, err = keypair.Parse(address); err != nil {
			return errors.BadPublicAddress.Clone().SetData("roster", address)
		}
		if _, found := common.InStringArray(seen, address); found {
			return errors.InvalidOperation.Clone().SetData(
				"reason", fmt.Sprintf("duplicated roster entry, '%s'", address),
			)
		}
		seen = append(seen, address)
	}

	return
}

func (o WithdrawExcess) TargetAddress() string {
	return o.Target
}

func (o WithdrawExcess) GetAmount() common.Amount {
	return o.Amount
}

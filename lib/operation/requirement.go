package operation

import (
	"encoding/json"

	"github.com/stellar/go/keypair"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
)

// SetRequirement sets the target's per-account requirement override.
// A zero amount clears the override so the account defers to the
// global requirement again. Administrator only.
//
// Tightening the requirement below a member's balance downgrades the
// membership immediately; raising or clearing it never upgrades.
type SetRequirement struct {
	Target string        `json:"target"`
	Amount common.Amount `json:"amount"`
}

func NewSetRequirement(target string, amount common.Amount) SetRequirement {
	return SetRequirement{
		Target: target,
		Amount: amount,
	}
}

func (o SetRequirement) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o SetRequirement) IsWellFormed(common.Config) (err error) {
	if len(o.Target) < 1 {
		return errors.ZeroIdentity
	}
	if _, err = keypair.Parse(o.Target); err != nil {
		return errors.BadPublicAddress
	}
	if o.Amount > common.MaximumBalance {
		return errors.MaximumBalanceReached
	}

	return
}

func (o SetRequirement) TargetAddress() string {
	return o.Target
}

func (o SetRequirement) GetAmount() common.Amount {
	return o.Amount
}

// SetGlobalRequirement replaces the default requirement. Existing
// members are deliberately not swept; each stays flagged until a sync
// or a stake mutation re-evaluates it. Administrator only.
type SetGlobalRequirement struct {
	Amount common.Amount `json:"amount"`
}

func NewSetGlobalRequirement(amount common.Amount) SetGlobalRequirement {
	return SetGlobalRequirement{
		Amount: amount,
	}
}

func (o SetGlobalRequirement) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o SetGlobalRequirement) IsWellFormed(common.Config) (err error) {
	if o.Amount > common.MaximumBalance {
		return errors.MaximumBalanceReached
	}

	return
}

func (o SetGlobalRequirement) GetAmount() common.Amount {
	return o.Amount
}

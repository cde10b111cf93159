package operation

import (
	"encoding/json"

	"github.com/stellar/go/keypair"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
)

// AdminAddMembership force-sets the member flag on the target,
// bypassing the stake check. Administrator only.
type AdminAddMembership struct {
	Target string `json:"target"`
}

func NewAdminAddMembership(target string) AdminAddMembership {
	return AdminAddMembership{
		Target: target,
	}
}

func (o AdminAddMembership) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o AdminAddMembership) IsWellFormed(common.Config) (err error) {
	if len(o.Target) < 1 {
		return errors.ZeroIdentity
	}
	if _, err = keypair.Parse(o.Target); err != nil {
		return errors.BadPublicAddress
	}

	return
}

func (o AdminAddMembership) TargetAddress() string {
	return o.Target
}

// AdminRemoveMembership force-clears the member flag on the target.
// Administrator only.
type AdminRemoveMembership struct {
	Target string `json:"target"`
}

func NewAdminRemoveMembership(target string) AdminRemoveMembership {
	return AdminRemoveMembership{
		Target: target,
	}
}

func (o AdminRemoveMembership) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o AdminRemoveMembership) IsWellFormed(common.Config) (err error) {
	if len(o.Target) < 1 {
		return errors.ZeroIdentity
	}
	if _, err = keypair.Parse(o.Target); err != nil {
		return errors.BadPublicAddress
	}

	return
}

func (o AdminRemoveMembership) TargetAddress() string {
	return o.Target
}

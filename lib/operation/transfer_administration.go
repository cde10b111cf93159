package operation

import (
	"encoding/json"

	"github.com/stellar/go/keypair"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
)

// TransferAdministration hands the administrator role to the target.
// The swap is unilateral and immediate, there is no acceptance step.
type TransferAdministration struct {
	Target string `json:"target"`
}

func NewTransferAdministration(target string) TransferAdministration {
	return TransferAdministration{
		Target: target,
	}
}

func (o TransferAdministration) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o TransferAdministration) IsWellFormed(common.Config) (err error) {
	if len(o.Target) < 1 {
		return errors.ZeroIdentity
	}
	if _, err = keypair.Parse(o.Target); err != nil {
		return errors.BadPublicAddress
	}

	return
}

func (o TransferAdministration) TargetAddress() string {
	return o.Target
}

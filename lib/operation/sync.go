package operation

import (
	"encoding/json"

	"github.com/stellar/go/keypair"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
)

// Sync re-evaluates the target's membership against the live
// requirement. Anyone may submit it for any account; it is the only
// way a stale member is downgraded after a global requirement change.
type Sync struct {
	Target string `json:"target"`
}

func NewSync(target string) Sync {
	return Sync{
		Target: target,
	}
}

func (o Sync) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o Sync) IsWellFormed(common.Config) (err error) {
	if len(o.Target) < 1 {
		return errors.ZeroIdentity
	}
	if _, err = keypair.Parse(o.Target); err != nil {
		return errors.BadPublicAddress
	}

	return
}

func (o Sync) TargetAddress() string {
	return o.Target
}

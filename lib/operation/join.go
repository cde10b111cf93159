package operation

import (
	"encoding/json"

	"stakegate.io/stakegate/lib/common"
)

// Join requests membership for the envelope source. It succeeds only
// when the staked balance meets the effective requirement, and is a
// no-op when the source is already a member.
type Join struct {
}

func NewJoin() Join {
	return Join{}
}

func (o Join) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o Join) IsWellFormed(common.Config) (err error) {
	return
}

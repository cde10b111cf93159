package operation

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/errors"
)

// Envelope is the signed unit of submission. The execution environment
// applies all of its operations atomically, in order, or none of them.
type Envelope struct {
	H EnvelopeHeader
	B EnvelopeBody
}

type EnvelopeHeader struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

type EnvelopeBody struct {
	Source     string      `json:"source"`
	SequenceID uint64      `json:"sequence_id"`
	Operations []Operation `json:"operations"`
}

func (eb EnvelopeBody) MakeHash() []byte {
	return common.MustMakeObjectHash(eb)
}

func (eb EnvelopeBody) MakeHashString() string {
	return base58.Encode(eb.MakeHash())
}

func NewEnvelope(source string, sequenceID uint64, ops ...Operation) (ev Envelope, err error) {
	if len(ops) < 1 {
		err = errors.InvalidEnvelope
		return
	}

	body := EnvelopeBody{
		Source:     source,
		SequenceID: sequenceID,
		Operations: ops,
	}

	ev = Envelope{
		H: EnvelopeHeader{
			Created: common.NowISO8601(),
			Hash:    body.MakeHashString(),
		},
		B: body,
	}

	return
}

var EnvelopeWellFormedCheckerFuncs = []common.CheckerFunc{
	CheckEnvelopeOverOperationsLimit,
	CheckEnvelopeSource,
	CheckEnvelopeOperations,
	CheckEnvelopeHashMatch,
	CheckEnvelopeVerifySignature,
}

func (ev Envelope) IsWellFormed(conf common.Config) (err error) {
	checker := &EnvelopeChecker{
		DefaultChecker: common.DefaultChecker{Funcs: EnvelopeWellFormedCheckerFuncs},
		Envelope:       ev,
		Conf:           conf,
	}
	if err = common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		return
	}

	return
}

func (ev Envelope) GetHash() string {
	return ev.H.Hash
}

func (ev Envelope) Source() string {
	return ev.B.Source
}

func (ev Envelope) IsValidSequenceID(sequenceID uint64) bool {
	return ev.B.SequenceID == sequenceID
}

// HasGuardedOperation reports whether any operation in the envelope
// performs an outbound transfer.
func (ev Envelope) HasGuardedOperation() bool {
	for _, op := range ev.B.Operations {
		if IsGuardedOperation(op.H.Type) {
			return true
		}
	}
	return false
}

// HasAdminOperation reports whether any operation in the envelope
// requires administrator authority.
func (ev Envelope) HasAdminOperation() bool {
	for _, op := range ev.B.Operations {
		if IsAdminOperation(op.H.Type) {
			return true
		}
	}
	return false
}

func (ev Envelope) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(ev)
	return
}

func (ev Envelope) String() string {
	encoded, _ := json.MarshalIndent(ev, "", "  ")
	return string(encoded)
}

func (ev *Envelope) Sign(kp keypair.KP, networkID []byte) {
	ev.H.Hash = ev.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, ev.H.Hash)

	ev.H.Signature = base58.Encode(signature)
}

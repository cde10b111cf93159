package ledger

import (
	"fmt"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/storage"
)

// Applied envelope markers back the replay check. A replayed
// envelope would already die on its stale sequence id; the marker
// lets the executor report the exact resubmission as
// EnvelopeAlreadyApplied instead of a generic sequence mismatch.

const EnvelopeAppliedPrefix string = "ev-applied-"

func GetEnvelopeAppliedKey(hash string) string {
	return fmt.Sprintf("%s%s", EnvelopeAppliedPrefix, hash)
}

func MarkEnvelopeApplied(st *storage.LevelDBBackend, hash string) error {
	return st.New(GetEnvelopeAppliedKey(hash), common.NowISO8601())
}

func ExistsEnvelopeApplied(st *storage.LevelDBBackend, hash string) (bool, error) {
	return st.Has(GetEnvelopeAppliedKey(hash))
}

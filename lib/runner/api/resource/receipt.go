package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/ledger"
)

type Receipt struct {
	rc *ledger.Receipt
}

func NewReceipt(rc *ledger.Receipt) *Receipt {
	r := &Receipt{
		rc: rc,
	}
	return r
}

func (r Receipt) GetMap() hal.Entry {
	return hal.Entry{
		"hash":          r.rc.Hash,
		"envelope_hash": r.rc.EnvelopeHash,
		"type":          string(r.rc.Type),
		"source":        r.rc.Source,
		"target":        r.rc.Target,
		"amount":        r.rc.Amount,
		"requirement":   r.rc.Requirement,
		"events":        r.rc.Events,
		"sequence_id":   r.rc.SequenceID,
		"confirmed":     r.rc.Confirmed,
	}
}

func (r Receipt) Resource() *hal.Resource {
	rs := hal.NewResource(r, r.LinkSelf())
	rs.AddLink("source", hal.NewLink(strings.Replace(URLAccounts, "{id}", r.rc.Source, -1)))
	if len(r.rc.Target) > 0 {
		rs.AddLink("target", hal.NewLink(strings.Replace(URLAccounts, "{id}", r.rc.Target, -1)))
	}
	return rs
}

func (r Receipt) LinkSelf() string {
	return strings.Replace(URLReceiptByHash, "{id}", r.rc.Hash, -1)
}

func (r Receipt) MarshalJSON() ([]byte, error) {
	rs := r.Resource()
	return common.JSONMarshalWithoutEscapeHTML(rs.GetMap())
}

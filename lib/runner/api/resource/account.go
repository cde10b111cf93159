package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/ledger"
)

type Account struct {
	ac *ledger.Account
}

func NewAccount(ac *ledger.Account) *Account {
	a := &Account{
		ac: ac,
	}
	return a
}

func (a Account) GetMap() hal.Entry {
	return hal.Entry{
		"address":           a.ac.Address,
		"staked":            a.ac.Staked,
		"required_override": a.ac.RequiredOverride,
		"is_member":         a.ac.IsMember,
		"ever_joined":       a.ac.EverJoined,
		"sequence_id":       a.ac.SequenceID,
	}
}

func (a Account) Resource() *hal.Resource {
	address := a.ac.Address

	r := hal.NewResource(a, a.LinkSelf())
	r.AddLink("receipts", hal.NewLink(strings.Replace(URLAccountReceipts, "{id}", address, -1)+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	r.AddLink("membership", hal.NewLink(strings.Replace(URLAccountMembership, "{id}", address, -1)))
	return r
}

func (a Account) LinkSelf() string {
	address := a.ac.Address
	return strings.Replace(URLAccounts, "{id}", address, -1)
}

func (a Account) MarshalJSON() ([]byte, error) {
	r := a.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}

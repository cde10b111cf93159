package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"stakegate.io/stakegate/lib/common"
)

// Membership is the gate decision for one address: whether it is a
// member right now, together with the numbers that decision rests on.
type Membership struct {
	Address    string
	IsMember   bool
	EverJoined bool
	Staked     common.Amount
	Required   common.Amount
}

func NewMembership(address string, isMember, everJoined bool, staked, required common.Amount) *Membership {
	m := &Membership{
		Address:    address,
		IsMember:   isMember,
		EverJoined: everJoined,
		Staked:     staked,
		Required:   required,
	}
	return m
}

func (m Membership) GetMap() hal.Entry {
	return hal.Entry{
		"address":     m.Address,
		"is_member":   m.IsMember,
		"ever_joined": m.EverJoined,
		"staked":      m.Staked,
		"required":    m.Required,
	}
}

func (m Membership) Resource() *hal.Resource {
	r := hal.NewResource(m, m.LinkSelf())
	r.AddLink("account", hal.NewLink(strings.Replace(URLAccounts, "{id}", m.Address, -1)))
	return r
}

func (m Membership) LinkSelf() string {
	return strings.Replace(URLAccountMembership, "{id}", m.Address, -1)
}

// Requirement is the effective stake threshold of one address.
type Requirement struct {
	Address  string
	Required common.Amount
}

func NewRequirement(address string, required common.Amount) *Requirement {
	r := &Requirement{
		Address:  address,
		Required: required,
	}
	return r
}

func (q Requirement) GetMap() hal.Entry {
	return hal.Entry{
		"address":  q.Address,
		"required": q.Required,
	}
}

func (q Requirement) Resource() *hal.Resource {
	r := hal.NewResource(q, q.LinkSelf())
	r.AddLink("account", hal.NewLink(strings.Replace(URLAccounts, "{id}", q.Address, -1)))
	return r
}

func (q Requirement) LinkSelf() string {
	return strings.Replace(URLAccountRequirement, "{id}", q.Address, -1)
}

package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"stakegate.io/stakegate/lib/ledger"
)

type Registry struct {
	s *ledger.State
}

func NewRegistry(s *ledger.State) *Registry {
	r := &Registry{
		s: s,
	}
	return r
}

func (r Registry) GetMap() hal.Entry {
	return hal.Entry{
		"administrator":      r.s.Administrator,
		"global_requirement": r.s.GlobalRequired,
	}
}

func (r Registry) Resource() *hal.Resource {
	rs := hal.NewResource(r, r.LinkSelf())
	rs.AddLink("administrator", hal.NewLink(strings.Replace(URLAccounts, "{id}", r.s.Administrator, -1)))
	return rs
}

func (r Registry) LinkSelf() string {
	return URLRegistry
}

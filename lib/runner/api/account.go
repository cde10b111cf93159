package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/network/httputils"
	"stakegate.io/stakegate/lib/runner/api/resource"
)

func (api NetworkHandlerAPI) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["id"]

	readFunc := func() (payload interface{}, err error) {
		found, err := ledger.ExistsAccount(api.storage, address)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.AccountDoesNotExist
		}
		ac, err := ledger.GetAccount(api.storage, address)
		if err != nil {
			return nil, err
		}
		payload = resource.NewAccount(ac)
		return payload, nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}

// GetAccountsHandler resolves a posted list of addresses at once.
// Unknown addresses are left out of the response.
func (api NetworkHandlerAPI) GetAccountsHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var addresses []string
	if err := json.Unmarshal(body, &addresses); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}
	if uint64(len(addresses)) > DefaultLimit {
		httputils.WriteJSONError(w, errors.PageQueryLimitMaxExceed)
		return
	} else if len(addresses) < 1 {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	var rs []resource.Resource
	for _, address := range addresses {
		found, err := ledger.ExistsAccount(api.storage, address)
		if err != nil {
			httputils.WriteJSONError(w, err)
			return
		}
		if !found {
			continue
		}
		ac, err := ledger.GetAccount(api.storage, address)
		if err != nil {
			httputils.WriteJSONError(w, err)
			return
		}
		rs = append(rs, resource.NewAccount(ac))
	}

	httputils.MustWriteJSON(w, 200, resource.NewResourceList(rs, "", "", ""))
}

func (api NetworkHandlerAPI) GetAccountsByCreatedHandler(w http.ResponseWriter, r *http.Request) {
	// created keys are plain text, so the cursor stays readable in links
	p, err := NewPageQuery(r, WithEncodePageCursor(false))
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var options = p.ListOptions()
	var firstCursor []byte
	var cursor []byte

	readFunc := func() []resource.Resource {
		var rs []resource.Resource
		iterFunc, closeFunc := ledger.GetAccountsByCreated(api.storage, options)
		for {
			ac, hasNext, c := iterFunc()
			cursor = append([]byte{}, c...)
			if len(firstCursor) == 0 {
				firstCursor = append(firstCursor, c...)
			}
			if !hasNext {
				break
			}
			rs = append(rs, resource.NewAccount(ac))
		}
		closeFunc()
		return rs
	}

	rs := readFunc()
	list := p.ResourceList(rs, firstCursor, cursor)
	httputils.MustWriteJSON(w, 200, list)
}

// GetAccountMembershipHandler answers the gate question for one
// address. An address that never staked is a valid subject with zero
// stake, so this never returns not found.
func (api NetworkHandlerAPI) GetAccountMembershipHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["id"]

	readFunc := func() (payload interface{}, err error) {
		s, err := ledger.GetState(api.storage)
		if err != nil {
			return nil, err
		}
		ac, err := ledger.GetOrNewAccount(api.storage, address)
		if err != nil {
			return nil, err
		}
		payload = resource.NewMembership(
			address,
			ac.IsMember,
			ac.EverJoined,
			ac.Staked,
			ledger.EffectiveRequirementOf(s, ac),
		)
		return payload, nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}

func (api NetworkHandlerAPI) GetAccountRequirementHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["id"]

	required, err := ledger.EffectiveRequirement(api.storage, address)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewRequirement(address, required))
}

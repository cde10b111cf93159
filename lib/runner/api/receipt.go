package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/network/httputils"
	"stakegate.io/stakegate/lib/runner/api/resource"
)

func (api NetworkHandlerAPI) GetReceiptsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var options = p.ListOptions()
	var firstCursor []byte
	var cursor []byte

	readFunc := func() []resource.Resource {
		var rs []resource.Resource
		iterFunc, closeFunc := ledger.GetReceiptsByCreated(api.storage, options)
		for {
			rc, hasNext, c := iterFunc()
			cursor = append([]byte{}, c...)
			if len(firstCursor) == 0 {
				firstCursor = append(firstCursor, c...)
			}
			if !hasNext {
				break
			}
			rs = append(rs, resource.NewReceipt(&rc))
		}
		closeFunc()
		return rs
	}

	rs := readFunc()
	list := p.ResourceList(rs, firstCursor, cursor)
	httputils.MustWriteJSON(w, 200, list)
}

func (api NetworkHandlerAPI) GetReceiptsByAccountHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["id"]

	p, err := NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var options = p.ListOptions()
	var firstCursor []byte
	var cursor []byte

	readFunc := func() []resource.Resource {
		var rs []resource.Resource
		iterFunc, closeFunc := ledger.GetReceiptsBySource(api.storage, address, options)
		for {
			rc, hasNext, c := iterFunc()
			cursor = append([]byte{}, c...)
			if len(firstCursor) == 0 {
				firstCursor = append(firstCursor, c...)
			}
			if !hasNext {
				break
			}
			rs = append(rs, resource.NewReceipt(&rc))
		}
		closeFunc()
		return rs
	}

	rs := readFunc()
	list := p.ResourceList(rs, firstCursor, cursor)
	httputils.MustWriteJSON(w, 200, list)
}

func (api NetworkHandlerAPI) GetReceiptByHashHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["id"]

	readFunc := func() (payload interface{}, err error) {
		found, err := ledger.ExistsReceipt(api.storage, key)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.ReceiptDoesNotExist
		}
		rc, err := ledger.GetReceipt(api.storage, key)
		if err != nil {
			return nil, err
		}
		payload = resource.NewReceipt(&rc)
		return payload, nil
	}

	payload, err := readFunc()
	if err == nil {
		httputils.MustWriteJSON(w, 200, payload)
	} else {
		httputils.WriteJSONError(w, err)
	}
}

package api

import (
	"net/http"

	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/network/httputils"
	"stakegate.io/stakegate/lib/runner/api/resource"
)

func (api NetworkHandlerAPI) GetRegistryHandler(w http.ResponseWriter, r *http.Request) {
	s, err := ledger.GetState(api.storage)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewRegistry(s))
}

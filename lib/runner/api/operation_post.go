package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/network/httputils"
	"stakegate.io/stakegate/lib/operation"
	"stakegate.io/stakegate/lib/runner/api/resource"
)

// PostOperationsHandler takes a signed envelope and hands it to the
// executor. The response carries one receipt per applied operation;
// a rejected envelope maps to the problem body of its error.
func (api NetworkHandlerAPI) PostOperationsHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if api.submitter == nil {
		httputils.WriteJSONError(w, errors.NotImplemented)
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	var ev operation.Envelope
	if err := json.Unmarshal(body, &ev); err != nil {
		httputils.WriteJSONError(w, errors.InvalidEnvelope.Clone().SetData("error", err.Error()))
		return
	}

	receipts, err := api.submitter.Execute(ev)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	for i := range receipts {
		rs = append(rs, resource.NewReceipt(&receipts[i]))
	}

	httputils.MustWriteJSON(w, 200, resource.NewResourceList(rs, "", "", ""))
}

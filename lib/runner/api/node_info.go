package api

import (
	"net/http"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/node"
)

func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	nodeInfo := api.nodeInfo

	if nodeInfo.Node.Endpoint == nil {
		rUrl := common.RequestURLFromRequest(r)
		rUrl.Path = ""
		rUrl.RawQuery = ""

		nodeInfo.Node.Endpoint = common.NewEndpointFromURL(rUrl)
	}

	// the registry moves with every admin operation, so it is read per
	// request rather than baked in at startup
	if s, err := ledger.GetState(api.storage); err == nil {
		nodeInfo.Registry = node.NodeRegistryInfo{
			Administrator:     s.Administrator,
			GlobalRequirement: s.GlobalRequired,
		}
	}

	var b []byte
	var err error
	if b, err = common.JSONMarshalIndent(nodeInfo); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Write(b)
}

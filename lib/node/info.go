package node

import (
	"encoding/json"

	"stakegate.io/stakegate/lib/common"
)

// NodeInfo is the payload of the `GET /` handler. `Registry` carries
// the live registry state and is filled per request.
type NodeInfo struct {
	Node     NodeInfoNode     `json:"node"`
	Policy   NodePolicy       `json:"policy"`
	Registry NodeRegistryInfo `json:"registry"`
}

type NodeInfoNode struct {
	Version  NodeVersion      `json:"version"`
	Started  string           `json:"started"`
	Alias    string           `json:"alias"`
	Address  string           `json:"address"`
	Endpoint *common.Endpoint `json:"endpoint"`
}

type NodePolicy struct {
	NetworkID        string `json:"network-id"`
	OperationsLimit  int    `json:"operations-limit"` // operations limit in an envelope
	RateLimitRuleAPI string `json:"rate-limit-api"`
}

type NodeRegistryInfo struct {
	Administrator     string        `json:"administrator"`
	GlobalRequirement common.Amount `json:"global-requirement"`
}

type NodeVersion struct {
	Version   string `json:"version"`
	GitCommit string `json:"git-commit"`
	GitState  string `json:"git-state"`
	BuildDate string `json:"build-date"`
}

func NewNodeInfoFromJSON(b []byte) (nodeInfo NodeInfo, err error) {
	err = json.Unmarshal(b, &nodeInfo)
	return
}

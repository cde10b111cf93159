package api

import (
	"fmt"

	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/network"
	"stakegate.io/stakegate/lib/node"
	"stakegate.io/stakegate/lib/operation"
	"stakegate.io/stakegate/lib/storage"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetAccountReceiptsHandlerPattern    = "/accounts/{id}/receipts"
	GetAccountMembershipHandlerPattern  = "/accounts/{id}/membership"
	GetAccountRequirementHandlerPattern = "/accounts/{id}/requirement"
	GetAccountHandlerPattern            = "/accounts/{id}"
	GetAccountsHandlerPattern           = "/accounts"
	GetReceiptsHandlerPattern           = "/receipts"
	GetReceiptByHashHandlerPattern      = "/receipts/{id}"
	GetRegistryHandlerPattern           = "/registry"
	PostOperationsPattern               = "/operations"
	GetNodeInfoPattern                  = "/"
	PostSubscribePattern                = "/subscribe"
)

// Submitter takes a signed envelope and applies it, returning one
// receipt per operation. *runner.Executor satisfies it.
type Submitter interface {
	Execute(envelope operation.Envelope) ([]ledger.Receipt, error)
}

type NetworkHandlerAPI struct {
	localNode *node.LocalNode
	network   network.Network
	storage   *storage.LevelDBBackend
	urlPrefix string
	version   string
	nodeInfo  node.NodeInfo
	submitter Submitter
}

func NewNetworkHandlerAPI(localNode *node.LocalNode, network network.Network, storage *storage.LevelDBBackend, urlPrefix string, nodeInfo node.NodeInfo, submitter Submitter) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		localNode: localNode,
		network:   network,
		storage:   storage,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
		nodeInfo:  nodeInfo,
		submitter: submitter,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

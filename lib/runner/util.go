package runner

import (
	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/metrics"
	"stakegate.io/stakegate/lib/node"
	"stakegate.io/stakegate/lib/storage"
	"stakegate.io/stakegate/lib/version"
)

func NewNodeInfo(nr *Runner) node.NodeInfo {
	localNode := nr.Node()

	var endpoint *common.Endpoint
	if localNode.PublishEndpoint() != nil {
		endpoint = localNode.PublishEndpoint()
	}

	nv := node.NodeVersion{
		Version:   version.Version,
		GitCommit: version.GitCommit,
		GitState:  version.GitState,
		BuildDate: version.BuildDate,
	}

	nd := node.NodeInfoNode{
		Version:  nv,
		Started:  common.NowISO8601(),
		Alias:    localNode.Alias(),
		Address:  localNode.Address(),
		Endpoint: endpoint,
	}

	policy := node.NodePolicy{
		NetworkID:        string(nr.Conf.NetworkID),
		OperationsLimit:  nr.Conf.OpsLimit,
		RateLimitRuleAPI: nr.Conf.RateLimitRuleAPI.Default.Formatted,
	}

	return node.NodeInfo{
		Node:   nd,
		Policy: policy,
	}
}

// seedRegistryGauges primes the registry gauges from storage, so the
// deltas recorded per envelope move on top of the truth rather than
// on top of zero.
func seedRegistryGauges(st *storage.LevelDBBackend, state *ledger.State) error {
	metrics.Registry.SetGlobalRequirement(uint64(state.GlobalRequired))

	var members int
	iterFunc, closeFunc := ledger.GetAccountsByCreated(st, storage.NewDefaultListOptions(false, nil, 0))
	for {
		ac, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}
		if ac.IsMember {
			members++
		}
	}
	closeFunc()
	metrics.Registry.SetMembers(members)

	var receipts uint64
	receiptIterFunc, receiptCloseFunc := ledger.GetReceiptsByCreated(st, storage.NewDefaultListOptions(false, nil, 0))
	for {
		_, hasNext, _ := receiptIterFunc()
		if !hasNext {
			break
		}
		receipts++
	}
	receiptCloseFunc()
	metrics.Registry.SetReceipts(receipts)

	return nil
}

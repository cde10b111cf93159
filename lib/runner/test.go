package runner

import (
	"fmt"
	"net"
	"time"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/network"
	"stakegate.io/stakegate/lib/node"
	"stakegate.io/stakegate/lib/operation"
	"stakegate.io/stakegate/lib/storage"
	"stakegate.io/stakegate/lib/transfer"
)

var networkID []byte = []byte("stakegate-unittest")

// TestMakeExecutor wires an executor over fresh storage with genesis
// applied and a recording transfer agent holding the given balance.
func TestMakeExecutor(globalRequired, held common.Amount) (*Executor, *transfer.TestAgent, *keypair.Full) {
	st := storage.NewTestStorage()
	adminKP, _ := ledger.TestMakeState(st, globalRequired)

	agent := transfer.NewTestAgent(held)

	return NewExecutor(st, agent, common.NewConfig(networkID)), agent, adminKP
}

// TestMakeMember stakes and joins a fresh account through one
// envelope, leaving its sequence id at 1.
func TestMakeMember(ex *Executor, amount common.Amount) *keypair.Full {
	kp := keypair.Random()

	ev := operation.TestMakeEnvelopeWithKeypair(networkID, kp, 0,
		operation.TestMakeStake(int(amount)),
		operation.TestMakeJoin(),
	)
	if _, err := ex.Execute(ev); err != nil {
		panic(err)
	}

	return kp
}

// TestMakeRunner assembles a whole node over fresh storage: genesis
// applied, executor wired, HTTP server bound to a random local port.
// The node is not serving until TestStartRunner.
func TestMakeRunner(globalRequired, held common.Amount) (*Runner, *transfer.TestAgent, *keypair.Full) {
	ex, agent, adminKP := TestMakeExecutor(globalRequired, held)

	kp := keypair.Random()
	endpoint, err := common.ParseEndpoint(fmt.Sprintf("http://localhost:%d", testFreePort()))
	if err != nil {
		panic(err)
	}
	localNode, _ := node.NewLocalNode(kp, endpoint, "")

	config, err := network.NewHTTP2NetworkConfigFromEndpoint(localNode.Alias(), endpoint)
	if err != nil {
		panic(err)
	}

	nr, err := NewRunner(localNode, network.NewHTTP2Network(config), ex, ex.Storage(), ex.conf)
	if err != nil {
		panic(err)
	}

	return nr, agent, adminKP
}

func testFreePort() int {
	ln, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		panic(err)
	}
	defer ln.Close()

	return ln.Addr().(*net.TCPAddr).Port
}

// TestStartRunner serves the node in the background and blocks until
// its root route answers.
func TestStartRunner(nr *Runner) {
	go nr.Start()

	timer := time.NewTimer(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer func() {
		timer.Stop()
		ticker.Stop()
	}()

	for range ticker.C {
		select {
		case <-timer.C:
			panic("runner did not become ready")
		default:
		}

		if nr.network.IsReady() {
			return
		}
	}
}

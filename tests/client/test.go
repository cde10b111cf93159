// +build client_integration_tests

package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stakegate.io/stakegate/lib/client"
	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/operation"
)

// The suite drives a running node from the outside; `go test` does
// not start one. Point it at a node bootstrapped through `stakegate
// genesis`:
//
//   SG_ENDPOINT              endpoint of the node under test
//   SG_NETWORK_ID            network id the node was started with
//   SG_ADMINISTRATOR_SECRET  secret seed of the genesis administrator

var (
	endpoint            = common.GetENVValue("SG_ENDPOINT", "https://127.0.0.1:12380")
	networkID           = common.GetENVValue("SG_NETWORK_ID", "stakegate-integration")
	administratorSecret = common.GetENVValue("SG_ADMINISTRATOR_SECRET", "")
)

func testClient() *client.Client {
	return client.NewClient(endpoint)
}

func administratorKP(t *testing.T) *keypair.Full {
	require.NotEmpty(t, administratorSecret, "SG_ADMINISTRATOR_SECRET must be set")

	kp, err := keypair.Parse(administratorSecret)
	require.NoError(t, err)

	full, ok := kp.(*keypair.Full)
	require.True(t, ok)

	return full
}

// globalRequirement reads the stake the node currently demands for
// membership.
func globalRequirement(t *testing.T, c *client.Client) common.Amount {
	registry, err := c.LoadRegistry()
	require.NoError(t, err)

	required, err := common.AmountFromString(registry.GlobalRequirement)
	require.NoError(t, err)

	return required
}

// trySubmit signs and ships `bodies` from `sender` with the sender's
// current sequence id, returning whatever the node answered.
func trySubmit(t *testing.T, c *client.Client, sender *keypair.Full, bodies ...operation.Body) (client.ReceiptsPage, error) {
	var sequenceID uint64
	if account, err := c.LoadAccount(sender.Address()); err == nil {
		sequenceID = account.SequenceID
	}

	var ops []operation.Operation
	for _, b := range bodies {
		op, err := operation.NewOperation(b)
		require.NoError(t, err)
		ops = append(ops, op)
	}

	ev, err := operation.NewEnvelope(sender.Address(), sequenceID, ops...)
	require.NoError(t, err)
	ev.Sign(sender, []byte(networkID))

	body, err := ev.Serialize()
	require.NoError(t, err)

	return c.SubmitOperations(body)
}

// submit is trySubmit for operations that must land.
func submit(t *testing.T, c *client.Client, sender *keypair.Full, bodies ...operation.Body) client.ReceiptsPage {
	page, err := trySubmit(t, c, sender, bodies...)
	require.NoError(t, err)
	require.Equal(t, len(bodies), len(page.Embedded.Records))

	return page
}

// makeMember stakes a fresh account up to the current requirement and
// joins it.
func makeMember(t *testing.T, c *client.Client) *keypair.Full {
	required := globalRequirement(t, c)

	kp := keypair.Random()
	submit(t, c, kp, operation.NewStake(required), operation.NewJoin())

	membership, err := c.LoadMembership(kp.Address())
	require.NoError(t, err)
	require.True(t, membership.IsMember)

	return kp
}

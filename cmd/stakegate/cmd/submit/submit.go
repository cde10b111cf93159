package submit

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cmdcommon "stakegate.io/stakegate/cmd/stakegate/common"
	"stakegate.io/stakegate/lib/client"
	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/operation"
)

var (
	flagNetworkID string = common.GetENVValue("SG_NETWORK_ID", "")
	flagEndpoint  string = common.GetENVValue("SG_ENDPOINT", "")
)

func attachCommonFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "endpoint of the node to submit to (https address)")
	c.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
}

func parseSecretSeed(c *cobra.Command, name, input string) *keypair.Full {
	kp, err := keypair.Parse(input)
	if err != nil {
		cmdcommon.PrintFlagsError(c, name, err)
	}

	full, ok := kp.(*keypair.Full)
	if !ok {
		cmdcommon.PrintFlagsError(c, name, fmt.Errorf("provided key is an address, not a secret seed"))
	}

	return full
}

func parseAddress(c *cobra.Command, name, input string) keypair.KP {
	kp, err := keypair.Parse(input)
	if err != nil {
		cmdcommon.PrintFlagsError(c, name, err)
	}

	if _, ok := kp.(*keypair.Full); ok {
		cmdcommon.PrintFlagsError(c, name, fmt.Errorf("provided key is a secret seed, not an address"))
	}

	return kp
}

func parseAmount(c *cobra.Command, name, input string) common.Amount {
	amount, err := cmdcommon.ParseAmountFromString(input)
	if err != nil {
		cmdcommon.PrintFlagsError(c, name, err)
	}

	return amount
}

// submit builds a signed envelope around `bodies`, ships it to the
// node and prints the receipts it answered with. The sender's next
// sequence id is read from the node; an account the registry has
// never seen starts at zero.
func submit(c *cobra.Command, sender *keypair.Full, bodies ...operation.Body) {
	if len(flagNetworkID) == 0 {
		cmdcommon.PrintFlagsError(c, "--network-id", fmt.Errorf("a --network-id needs to be provided"))
	}
	if _, err := common.ParseEndpoint(flagEndpoint); err != nil {
		cmdcommon.PrintFlagsError(c, "--endpoint", err)
	}

	cl := client.NewClient(flagEndpoint)

	var sequenceID uint64
	if account, err := cl.LoadAccount(sender.Address()); err == nil {
		sequenceID = account.SequenceID
	} else if p, ok := err.(client.Error); !ok || p.Problem.Status != 404 {
		cmdcommon.PrintError(c, fmt.Errorf("could not fetch sender account: %v", err))
	}

	var ops []operation.Operation
	for _, b := range bodies {
		op, err := operation.NewOperation(b)
		if err != nil {
			cmdcommon.PrintError(c, err)
		}
		ops = append(ops, op)
	}

	ev, err := operation.NewEnvelope(sender.Address(), sequenceID, ops...)
	if err != nil {
		cmdcommon.PrintError(c, err)
	}
	ev.Sign(sender, []byte(flagNetworkID))

	body, err := ev.Serialize()
	if err != nil {
		cmdcommon.PrintError(c, err)
	}

	page, err := cl.SubmitOperations(body)
	if err != nil {
		cmdcommon.PrintError(c, err)
	}

	if err := cmdcommon.DefaultEncodes["prettyjson"](page.Embedded.Records, os.Stdout); err != nil {
		cmdcommon.PrintError(c, err)
	}
}

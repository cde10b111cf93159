package submit

import (
	"github.com/spf13/cobra"

	"stakegate.io/stakegate/lib/operation"
)

var (
	StakeCmd   *cobra.Command
	UnstakeCmd *cobra.Command
	JoinCmd    *cobra.Command
	SyncCmd    *cobra.Command
)

func init() {
	StakeCmd = &cobra.Command{
		Use:   "stake <amount> <staker secret seed>",
		Short: "Deposit <amount> against the staker's account",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			amount := parseAmount(c, "<amount>", args[0])
			sender := parseSecretSeed(c, "<staker secret seed>", args[1])

			submit(c, sender, operation.NewStake(amount))
		},
	}
	attachCommonFlags(StakeCmd)

	UnstakeCmd = &cobra.Command{
		Use:   "unstake <amount> <staker secret seed>",
		Short: "Withdraw <amount> of the staker's deposit",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			amount := parseAmount(c, "<amount>", args[0])
			sender := parseSecretSeed(c, "<staker secret seed>", args[1])

			submit(c, sender, operation.NewUnstake(amount))
		},
	}
	attachCommonFlags(UnstakeCmd)

	JoinCmd = &cobra.Command{
		Use:   "join <staker secret seed>",
		Short: "Claim membership once the staked deposit covers the requirement",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			sender := parseSecretSeed(c, "<staker secret seed>", args[0])

			submit(c, sender, operation.NewJoin())
		},
	}
	attachCommonFlags(JoinCmd)

	SyncCmd = &cobra.Command{
		Use:   "sync <target public key> <sender secret seed>",
		Short: "Re-evaluate the target's membership against the current requirement",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			target := parseAddress(c, "<target public key>", args[0])
			sender := parseSecretSeed(c, "<sender secret seed>", args[1])

			submit(c, sender, operation.NewSync(target.Address()))
		},
	}
	attachCommonFlags(SyncCmd)
}

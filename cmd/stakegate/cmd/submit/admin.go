package submit

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	cmdcommon "stakegate.io/stakegate/cmd/stakegate/common"
	"stakegate.io/stakegate/lib/operation"
)

var (
	AddMembershipCmd          *cobra.Command
	RemoveMembershipCmd       *cobra.Command
	SetRequirementCmd         *cobra.Command
	SetGlobalRequirementCmd   *cobra.Command
	TransferAdministrationCmd *cobra.Command
	WithdrawExcessCmd         *cobra.Command

	flagRoster cmdcommon.ListFlags
)

func init() {
	AddMembershipCmd = &cobra.Command{
		Use:   "add-membership <target public key> <administrator secret seed>",
		Short: "Grant membership to the target, bypassing the stake requirement",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			target := parseAddress(c, "<target public key>", args[0])
			sender := parseSecretSeed(c, "<administrator secret seed>", args[1])

			submit(c, sender, operation.NewAdminAddMembership(target.Address()))
		},
	}
	attachCommonFlags(AddMembershipCmd)

	RemoveMembershipCmd = &cobra.Command{
		Use:   "remove-membership <target public key> <administrator secret seed>",
		Short: "Revoke the target's membership, leaving its deposit untouched",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			target := parseAddress(c, "<target public key>", args[0])
			sender := parseSecretSeed(c, "<administrator secret seed>", args[1])

			submit(c, sender, operation.NewAdminRemoveMembership(target.Address()))
		},
	}
	attachCommonFlags(RemoveMembershipCmd)

	SetRequirementCmd = &cobra.Command{
		Use:   "set-requirement <target public key> <amount> <administrator secret seed>",
		Short: "Override the stake requirement for a single account",
		Args:  cobra.ExactArgs(3),
		Run: func(c *cobra.Command, args []string) {
			target := parseAddress(c, "<target public key>", args[0])
			amount := parseAmount(c, "<amount>", args[1])
			sender := parseSecretSeed(c, "<administrator secret seed>", args[2])

			submit(c, sender, operation.NewSetRequirement(target.Address(), amount))
		},
	}
	attachCommonFlags(SetRequirementCmd)

	SetGlobalRequirementCmd = &cobra.Command{
		Use:   "set-global-requirement <amount> <administrator secret seed>",
		Short: "Set the stake requirement applied to accounts without an override",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			amount := parseAmount(c, "<amount>", args[0])
			sender := parseSecretSeed(c, "<administrator secret seed>", args[1])

			submit(c, sender, operation.NewSetGlobalRequirement(amount))
		},
	}
	attachCommonFlags(SetGlobalRequirementCmd)

	TransferAdministrationCmd = &cobra.Command{
		Use:   "transfer-administration <new administrator public key> <administrator secret seed>",
		Short: "Hand the administrator role to another account",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			target := parseAddress(c, "<new administrator public key>", args[0])
			sender := parseSecretSeed(c, "<administrator secret seed>", args[1])

			submit(c, sender, operation.NewTransferAdministration(target.Address()))
		},
	}
	attachCommonFlags(TransferAdministrationCmd)

	WithdrawExcessCmd = &cobra.Command{
		Use:   "withdraw-excess <target public key> <amount> <administrator secret seed>",
		Short: "Pay out value held beyond the sum of tracked deposits",
		Args:  cobra.ExactArgs(3),
		Run: func(c *cobra.Command, args []string) {
			target := parseAddress(c, "<target public key>", args[0])
			amount := parseAmount(c, "<amount>", args[1])
			sender := parseSecretSeed(c, "<administrator secret seed>", args[2])

			var roster []string
			for _, entry := range flagRoster {
				for _, address := range strings.Fields(entry) {
					roster = append(roster, parseAddress(c, "--roster", address).Address())
				}
			}
			if len(roster) < 1 {
				cmdcommon.PrintFlagsError(c, "--roster", errors.New("must be given"))
			}

			submit(c, sender, operation.NewWithdrawExcess(target.Address(), amount, roster))
		},
	}
	WithdrawExcessCmd.Flags().Var(&flagRoster, "roster", "addresses whose deposits make up the tracked total: <public key> [ <public key>...]")
	attachCommonFlags(WithdrawExcessCmd)
}

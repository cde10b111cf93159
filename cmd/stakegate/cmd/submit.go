package cmd

import (
	"github.com/spf13/cobra"

	"stakegate.io/stakegate/cmd/stakegate/cmd/submit"
)

var (
	submitCmd *cobra.Command
)

func init() {
	submitCmd = &cobra.Command{
		Use:   "submit",
		Short: "Submit operations to the registry",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	submitCmd.AddCommand(submit.StakeCmd)
	submitCmd.AddCommand(submit.UnstakeCmd)
	submitCmd.AddCommand(submit.JoinCmd)
	submitCmd.AddCommand(submit.SyncCmd)
	submitCmd.AddCommand(submit.AddMembershipCmd)
	submitCmd.AddCommand(submit.RemoveMembershipCmd)
	submitCmd.AddCommand(submit.SetRequirementCmd)
	submitCmd.AddCommand(submit.SetGlobalRequirementCmd)
	submitCmd.AddCommand(submit.TransferAdministrationCmd)
	submitCmd.AddCommand(submit.WithdrawExcessCmd)
	rootCmd.AddCommand(submitCmd)
}

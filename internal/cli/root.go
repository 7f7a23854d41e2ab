package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "swarmctl",
		Short:         "swarmctl manages and simulates tracker swarms",
		Long:          `swarmctl runs offline swarm simulations and prepares tracker databases.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSimulateCmd(), newMigrateCmd())
	return root
}

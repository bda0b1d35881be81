package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/prismctl/cmd/prismctl/handlers"
)

// Create returns the command that runs the VM wizard once.
func Create() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Compose and submit a single VM creation request",
		Long: `Compose and submit a single VM creation request.

The wizard asks for the VM name, vCPUs, cores per vCPU and memory, then
for one or more disks and optional network interfaces. The request is
submitted once and the cluster response is printed.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Create(cmd.Context(), options(cmd))
		},
	}
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/prismctl/cmd/prismctl/handlers"
)

// Console returns the command that starts the interactive menu.
func Console() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start the interactive cluster menu",
		Long: `Start the interactive cluster menu.

Missing cluster address, username or password are asked for at startup.
From the menu you can show cluster information, list storage containers
and networks, and create a VM.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Console(cmd.Context(), options(cmd))
		},
	}
}

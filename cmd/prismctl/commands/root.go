// Package commands defines the CLI command structure and flag bindings.
//
// Commands parse arguments and flags and delegate execution to the handlers
// package. Persistent flags on the root command override values from the
// config file and PRISM_* environment variables.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/prismctl/cmd/prismctl/handlers"
)

// Root returns the root command for the prismctl CLI. Run without a
// subcommand it starts the interactive console.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "prismctl",
		Short:         "Interactive operator console for Nutanix Prism",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Console(cmd.Context(), options(cmd))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to configuration file (default: prismctl.yaml if present)")
	flags.String("cluster", "", "Cluster virtual IP address or hostname")
	flags.Int("port", 9440, "Prism API port")
	flags.String("username", "", "Prism username")
	flags.Bool("insecure", true, "Skip TLS certificate verification")
	flags.Duration("timeout", 0, "Per-request timeout for inventory calls (e.g. 30s)")
	flags.String("log-level", "info", "Log level (info, debug, trace)")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.String("dump-dir", "", "Directory to write raw API payloads to")
	flags.String("metrics-textfile", "", "Write session metrics to this Prometheus textfile on exit")

	cmd.AddCommand(Console())
	cmd.AddCommand(Create())
	cmd.AddCommand(Cluster())
	cmd.AddCommand(Containers())
	cmd.AddCommand(Networks())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// options collects the persistent settings for a handler. Flags the user
// did not set fall back to file, environment and built-in defaults.
func options(cmd *cobra.Command) handlers.Options {
	configPath, _ := cmd.Flags().GetString("config")
	return handlers.Options{
		ConfigPath: configPath,
		Flags:      cmd.Flags(),
	}
}

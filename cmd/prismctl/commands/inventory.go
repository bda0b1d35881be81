package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/prismctl/cmd/prismctl/handlers"
	"github.com/imamik/prismctl/internal/output"
)

// Cluster returns the cluster command group.
func Cluster() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Inspect the connected cluster",
	}

	var out outputFlags
	show := &cobra.Command{
		Use:   "show",
		Short: "Show cluster information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ShowCluster(cmd.Context(), options(cmd), out.options())
		},
	}
	out.register(show, false)
	cmd.AddCommand(show)

	return cmd
}

// Containers returns the storage container command group.
func Containers() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "containers",
		Aliases: []string{"container", "ctr"},
		Short:   "Work with storage containers",
	}

	var out outputFlags
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List storage containers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListContainers(cmd.Context(), options(cmd), out.options())
		},
	}
	out.register(list, true)
	cmd.AddCommand(list)

	return cmd
}

// Networks returns the network command group.
func Networks() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "networks",
		Aliases: []string{"network", "net"},
		Short:   "Work with virtual networks",
	}

	var out outputFlags
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List virtual networks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListNetworks(cmd.Context(), options(cmd), out.options())
		},
	}
	out.register(list, true)
	cmd.AddCommand(list)

	return cmd
}

// outputFlags holds the rendering flags shared by the inventory commands.
type outputFlags struct {
	format    string
	noHeaders bool
}

func (o *outputFlags) register(cmd *cobra.Command, tabular bool) {
	cmd.Flags().StringVarP(&o.format, "output", "o", string(output.FormatTable), "Output format (table, yaml, json)")
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(output.FormatTable), string(output.FormatYAML), string(output.FormatJSON)}, cobra.ShellCompDirectiveNoFileComp
	})
	if tabular {
		cmd.Flags().BoolVar(&o.noHeaders, "no-headers", false, "Omit the header row in table output")
	}
}

func (o *outputFlags) options() output.Options {
	return output.Options{Format: output.Format(o.format), NoHeaders: o.noHeaders}
}

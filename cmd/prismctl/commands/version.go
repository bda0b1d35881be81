package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/imamik/prismctl/internal/prism"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information from main.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Version returns the version command. --short prints only the release.
func Version() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(out, version)
				return
			}
			_, _ = fmt.Fprintf(out, "prismctl %s\n", version)
			_, _ = fmt.Fprintf(out, "  commit:    %s\n", commit)
			_, _ = fmt.Fprintf(out, "  built:     %s\n", date)
			_, _ = fmt.Fprintf(out, "  prism api: %s\n", prism.APIVersion)
			_, _ = fmt.Fprintf(out, "  go:        %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

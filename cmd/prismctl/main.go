// Package main is the entry point for the prismctl CLI.
//
// prismctl is an interactive operator console for a Nutanix Prism cluster.
// It lists storage containers and networks and walks the operator through
// composing and submitting a VM creation request.
//
// For detailed usage information, run:
//
//	prismctl --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/prismctl/cmd/prismctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

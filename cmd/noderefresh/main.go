// Package main is the entry point for the noderefresh CLI.
//
// noderefresh inspects NodeRefresh requests in a cluster and can run a
// single reconciliation pass locally, outside the operator.
//
// For detailed usage information, run:
//
//	noderefresh --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/noderefresh/cmd/noderefresh/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

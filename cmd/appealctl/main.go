// appealctl is the terminal client for the appeal engine.
package main

import (
	"fmt"
	"os"

	"github.com/roadpenalty/appealcore/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
}

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

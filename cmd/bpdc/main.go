// Package main is the bpdc command line entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/modkit/bpdc/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}

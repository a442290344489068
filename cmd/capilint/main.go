// Package main provides the capilint CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/capilint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the advisor CLI.
package main

import (
	"fmt"
	"os"

	"advisor/internal/cli"
)

// Version information (set at build time)
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

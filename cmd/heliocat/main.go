// Package main is the entry point for the heliocat CLI binary.
package main

import (
	"os"

	"heliocat/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}

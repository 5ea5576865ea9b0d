// Package main provides the funnelkit CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/funnelkit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

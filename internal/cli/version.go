package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/mesh-intelligence/funnelkit"

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/funnelkit/internal/cli.Version=...".
var Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the funnelkit version",
		Args:  argsExactly(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "funnelkit v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}

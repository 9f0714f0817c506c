package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the contacts release, overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/contacts/internal/cli.Version=...".
var Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "contacts %s\n", Version)
			return err
		},
	}
}

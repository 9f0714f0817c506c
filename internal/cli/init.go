package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and data directory",
		Long: `Init writes a default config.yaml to the config directory if none exists,
creates the data directory and prints both locations. Running it again
changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config: %s\n", filepath.Join(a.configDir, configFileExt))
			fmt.Fprintf(out, "data:   %s\n", a.dataDir)
			return nil
		},
	}
}

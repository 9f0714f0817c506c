package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/contacts/internal/paths"
)

func newExecCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "exec [--file path] -- <command> [args...]",
		Short: "Run one assistant command against a saved address book",
		Long: `Exec loads the address book file, runs a single assistant command and
saves the book back if the command changed it. The file defaults to
book_file from config.yaml, relative to the data directory. A "load"
only reads the named file; it never writes it over the book file.`,
		Example: `  contacts exec -- add John 1234567890
  contacts exec --file work.yaml -- phone John`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = a.cfg.BookFile
			}
			return a.execOne(cmd, paths.ResolveFile(a.dataDir, file), args[0], args[1:])
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "address book file (default: book_file from config)")

	return cmd
}

// execOne restores path, runs one command and persists path when the
// command mutated the book other than by loading another file. A rejected
// command exits with a user error.
func (a *app) execOne(cmd *cobra.Command, path, name string, args []string) error {
	r := a.newRouter()
	if err := r.Book().Restore(path); err != nil {
		return sysError(fmt.Errorf("load %s: %w", path, err))
	}

	resp, err := r.Execute(name, args)
	if err != nil {
		return sysError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
	if resp.Failed {
		return &exitError{code: exitUserError}
	}

	if resp.Mutated && !resp.Loaded {
		if err := r.Book().Persist(path); err != nil {
			return sysError(fmt.Errorf("save %s: %w", path, err))
		}
	}
	return nil
}

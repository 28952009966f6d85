package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database file and schema if missing",
		Long: `Create the database file, its tables and the default settings row.
Running init again leaves existing data untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(s *session) error {
				if err := s.store.Initialize(s.ctx); err != nil {
					return s.out.Fail("failed to initialize database", err)
				}
				path := s.store.Path()
				return s.out.Success(map[string]string{"path": path}, func(w io.Writer) {
					fmt.Fprintf(w, "Database ready at %s\n", path)
				})
			})
		},
	}
}

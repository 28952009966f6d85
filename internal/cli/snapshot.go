package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// SnapshotOptions holds flags for the snapshot commands.
type SnapshotOptions struct {
	*RootOptions
	Output string
	Input  string
}

// NewSnapshotCommand creates the snapshot command group.
func NewSnapshotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SnapshotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export, import and restore the whole database file",
		Long: `Move the database file in and out as standard base64 text.

Importing writes a backup of the current file next to it before replacing
it. The imported bytes are not checked: an invalid file only fails on the
next command. "snapshot restore" copies the backup back.`,
	}

	cmd.AddCommand(newSnapshotExportCommand(opts))
	cmd.AddCommand(newSnapshotImportCommand(opts))
	cmd.AddCommand(newSnapshotRestoreCommand(opts))

	return cmd
}

func newSnapshotExportCommand(opts *SnapshotOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the database file as base64",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRawSession(opts.RootOptions, cmd, func(s *session) error {
				encoded, err := s.services.SnapshotService.ExportBase64(s.ctx)
				if err != nil {
					return s.out.Fail("failed to export database", err)
				}

				if opts.Output != "" {
					if err := os.WriteFile(opts.Output, []byte(encoded), 0600); err != nil {
						return s.out.Fail("failed to write snapshot", WrapExitError(ExitCommandError, opts.Output, err))
					}
					s.out.VerboseLog("wrote %d base64 characters to %s", len(encoded), opts.Output)
					return s.out.Success(map[string]string{"output": opts.Output}, func(w io.Writer) {
						fmt.Fprintf(w, "Snapshot written to %s\n", opts.Output)
					})
				}

				return s.out.Success(map[string]string{"snapshot": encoded}, func(w io.Writer) {
					fmt.Fprintln(w, encoded)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the snapshot to a file instead of stdout")

	return cmd
}

func newSnapshotImportCommand(opts *SnapshotOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the database file with a base64 snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			encoded, err := readSnapshot(opts.Input, cmd.InOrStdin())
			if err != nil {
				return newFormatter(opts.RootOptions, cmd).Fail("failed to read snapshot", err)
			}

			return withRawSession(opts.RootOptions, cmd, func(s *session) error {
				if err := s.services.SnapshotService.ImportBase64(s.ctx, encoded); err != nil {
					return s.out.Fail("failed to import database", err)
				}
				backup := s.store.BackupPath()
				return s.out.Success(map[string]string{"backup_path": backup}, func(w io.Writer) {
					fmt.Fprintf(w, "Database imported. Previous file saved to %s\n", backup)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "-", "snapshot file, or - for stdin")

	return cmd
}

func newSnapshotRestoreCommand(opts *SnapshotOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore the backup written by the last import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRawSession(opts.RootOptions, cmd, func(s *session) error {
				if err := s.services.SnapshotService.RestoreBackup(s.ctx); err != nil {
					return s.out.Fail("failed to restore backup", err)
				}
				path := s.store.Path()
				return s.out.Success(map[string]string{"path": path}, func(w io.Writer) {
					fmt.Fprintf(w, "Backup restored to %s\n", path)
				})
			})
		},
	}
}

func readSnapshot(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", WrapExitError(ExitCommandError, "cannot read stdin", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "cannot read snapshot file", err)
	}
	return string(data), nil
}

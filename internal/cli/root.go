package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"restaurant-pos-store/internal/config"
	"restaurant-pos-store/internal/services"
	"restaurant-pos-store/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	Database   string // overrides the configured database path
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for posctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "posctl",
		Short: "posctl - restaurant point-of-sale data store",
		Long: `Manage the local database of a restaurant point-of-sale terminal.

The database is a single SQLite file holding the product catalog, the
restaurant settings and the sales history. Its location comes from
--db, POS_DB_PATH, or POS_DATA_DIR/POS_DB_FILE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the SQLite database file")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewSettingsCommand(opts))
	cmd.AddCommand(NewSalesCommand(opts))
	cmd.AddCommand(NewTransactionsCommand(opts))
	cmd.AddCommand(NewAnalyticsCommand(opts))
	cmd.AddCommand(NewSnapshotCommand(opts))
	cmd.AddCommand(NewDoctorCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// session is an open store plus the services and output of one invocation
type session struct {
	ctx      context.Context
	store    *store.Store
	services *services.ServiceContainer
	out      *OutputFormatter
	logger   *logrus.Entry
}

// newFormatter builds the formatter for cmd with a fresh invocation id
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   uuid.NewString(),
	}
}

// openSession loads configuration and opens the store. Failures are
// reported through the formatter before being returned.
func openSession(opts *RootOptions, cmd *cobra.Command, storeOpts store.Options) (*session, error) {
	out := newFormatter(opts, cmd)

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, out.Fail("failed to load configuration", err)
	}
	if opts.Database != "" {
		cfg.Database.Path = opts.Database
	}

	logger := cfg.NewLogger()
	logger.SetOutput(cmd.ErrOrStderr())
	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	entry := logger.WithFields(logrus.Fields{
		"invocation_id": out.TraceID,
		"command":       cmd.CommandPath(),
	})
	entry.Debug("Command started")

	st, err := store.Open(ctx, cfg, storeOpts, logger)
	if err != nil {
		return nil, out.Fail("failed to open database", err)
	}

	container, err := services.NewServiceContainer(st)
	if err != nil {
		st.Close()
		return nil, out.Fail("failed to create services", err)
	}

	return &session{
		ctx:      ctx,
		store:    st,
		services: container,
		out:      out,
		logger:   entry,
	}, nil
}

// close closes the store, logging instead of failing the command
func (s *session) close() {
	if err := s.store.Close(); err != nil {
		s.logger.WithError(err).Error("Failed to close database")
	}
	s.logger.Debug("Command finished")
}

// withSession runs fn against an open, initialized store
func withSession(opts *RootOptions, cmd *cobra.Command, fn func(s *session) error) error {
	return runSession(opts, cmd, store.Options{}, fn)
}

// withRawSession runs fn against a store whose file is neither checked nor
// initialized, for commands that must work on a damaged file
func withRawSession(opts *RootOptions, cmd *cobra.Command, fn func(s *session) error) error {
	return runSession(opts, cmd, store.Options{SkipInitialize: true}, fn)
}

func runSession(opts *RootOptions, cmd *cobra.Command, storeOpts store.Options, fn func(s *session) error) error {
	s, err := openSession(opts, cmd, storeOpts)
	if err != nil {
		return err
	}
	defer s.close()

	return fn(s)
}

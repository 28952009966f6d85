package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"restaurant-pos-store/internal/services"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the database file, schema and sale items",
		Long: `Check that the database answers queries, has every expected table and
holds no sale items whose sale is gone. Exits 1 when a check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRawSession(opts, cmd, func(s *session) error {
				report, err := s.services.Diagnose(s.ctx)
				if err != nil {
					return s.out.Fail("diagnosis failed", err)
				}

				if !report.Healthy() {
					_ = s.out.Error(CodeUnhealthy, unhealthyMessage(report), report)
					exitErr := NewExitError(ExitFailure, unhealthyMessage(report))
					exitErr.Reported = true
					return exitErr
				}

				return s.out.Success(report, func(w io.Writer) {
					fmt.Fprintf(w, "Database OK (%s)\n", report.Health.ResponseTime)
					for k, v := range report.Health.Details {
						s.out.VerboseLog("%s: %s", k, v)
					}
				})
			})
		},
	}
}

func unhealthyMessage(report *services.DiagnosticReport) string {
	if !report.Health.Healthy {
		return report.Health.Message
	}
	return fmt.Sprintf("%d sale items reference missing sales", report.OrphanItems)
}

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"restaurant-pos-store/internal/models"
)

// NewAnalyticsCommand creates the analytics command.
func NewAnalyticsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show revenue and product sales aggregates",
		Long: `Show the dashboard aggregates: revenue per day for the 30 most recent
sale dates, the 10 best-selling products by quantity, the top 5 quantity
distribution and overall order totals.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(s *session) error {
				data, err := s.services.SaleService.GetAnalytics(s.ctx)
				if err != nil {
					return s.out.Fail("failed to compute analytics", err)
				}
				return s.out.Success(data, func(w io.Writer) {
					renderAnalytics(w, data)
				})
			})
		},
	}
}

func renderAnalytics(w io.Writer, data *models.AnalyticsData) {
	fmt.Fprintf(w, "Orders: %d  Revenue: %.2f  Average order: %.2f\n\n",
		data.Summary.TotalOrders, data.Summary.TotalRevenue, data.Summary.AverageOrderValue)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "DATE\tORDERS\tREVENUE")
	for _, d := range data.DailyRevenue {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", d.Date, d.Orders, d.Revenue)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "PRODUCT\tSOLD\tREVENUE")
	for _, p := range data.TopProducts {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", p.Name, p.Sales, p.Revenue)
	}

	tw.Flush()
}

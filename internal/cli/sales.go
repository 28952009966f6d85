package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/services"
)

// SaleAddOptions holds flags for sales add.
type SaleAddOptions struct {
	*RootOptions
	Items    []string
	Total    float64
	Currency string
	File     string
}

// NewSalesCommand creates the sales command group.
func NewSalesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Record completed orders",
	}

	cmd.AddCommand(newSalesAddCommand(rootOpts))

	return cmd
}

func newSalesAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaleAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a sale and its items",
		Long: `Record a completed order. Items are given as name:price:quantity:unit,
or the whole order is read as JSON from --file ("-" for stdin):

  {"products": [{"name": "Tea", "price": 2.5, "quantity": 3, "unit": "cup"}],
   "total_amount": 7.5, "currency": "PKR"}

When --total is omitted the total is the sum of the item line totals.`,
		Example: `  posctl sales add --item "Tea:2.5:3:cup" --item "Naan:30:2:piece" --currency PKR
  posctl sales add --file order.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildSaleRequest(opts, cmd)
			if err != nil {
				return newFormatter(opts.RootOptions, cmd).Fail("invalid sale", err)
			}

			return withSession(opts.RootOptions, cmd, func(s *session) error {
				id, err := s.services.SaleService.RecordSale(s.ctx, req)
				if err != nil {
					return s.out.Fail("failed to record sale", err)
				}
				return s.out.Success(map[string]int64{"id": id}, func(w io.Writer) {
					fmt.Fprintf(w, "Recorded sale %d: %.2f %s\n", id, req.TotalAmount, req.Currency)
				})
			})
		},
	}

	cmd.Flags().StringArrayVar(&opts.Items, "item", nil, "sale item as name:price:quantity:unit (repeatable)")
	cmd.Flags().Float64Var(&opts.Total, "total", 0, "order total (defaults to the sum of the items)")
	cmd.Flags().StringVar(&opts.Currency, "currency", models.DefaultCurrency, "currency code")
	cmd.Flags().StringVar(&opts.File, "file", "", "read the order as JSON from a file or - for stdin")

	return cmd
}

func buildSaleRequest(opts *SaleAddOptions, cmd *cobra.Command) (*services.RecordSaleRequest, error) {
	if opts.File != "" {
		if len(opts.Items) > 0 {
			return nil, NewExitError(ExitCommandError, "--file and --item cannot be combined")
		}
		return readSaleFile(opts.File, cmd.InOrStdin())
	}

	req := &services.RecordSaleRequest{Currency: opts.Currency}
	var sum float64
	for _, raw := range opts.Items {
		item, err := parseSaleItem(raw)
		if err != nil {
			return nil, err
		}
		req.Products = append(req.Products, item)
		sum += item.Price * item.Quantity
	}

	req.TotalAmount = sum
	if cmd.Flags().Changed("total") {
		req.TotalAmount = opts.Total
	}

	return req, nil
}

func readSaleFile(path string, stdin io.Reader) (*services.RecordSaleRequest, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "cannot open order file", err)
		}
		defer f.Close()
		r = f
	}

	req := &services.RecordSaleRequest{}
	if err := json.NewDecoder(r).Decode(req); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid order JSON", err)
	}
	return req, nil
}

// parseSaleItem parses name:price:quantity:unit. The name may itself contain colons.
func parseSaleItem(raw string) (services.SaleItemRequest, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 4 {
		return services.SaleItemRequest{}, NewExitError(ExitCommandError,
			fmt.Sprintf("item %q must be name:price:quantity:unit", raw))
	}

	n := len(parts)
	price, err := strconv.ParseFloat(parts[n-3], 64)
	if err != nil {
		return services.SaleItemRequest{}, WrapExitError(ExitCommandError, fmt.Sprintf("item %q has an invalid price", raw), err)
	}
	quantity, err := strconv.ParseFloat(parts[n-2], 64)
	if err != nil {
		return services.SaleItemRequest{}, WrapExitError(ExitCommandError, fmt.Sprintf("item %q has an invalid quantity", raw), err)
	}

	return services.SaleItemRequest{
		Name:     strings.Join(parts[:n-3], ":"),
		Price:    price,
		Quantity: quantity,
		Unit:     parts[n-1],
	}, nil
}

// NewTransactionsCommand creates the transactions command group.
func NewTransactionsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Browse and delete recorded sales",
	}

	cmd.AddCommand(newTransactionsListCommand(rootOpts))
	cmd.AddCommand(newTransactionsDeleteCommand(rootOpts))

	return cmd
}

func newTransactionsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sales with their items, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(s *session) error {
				transactions, err := s.services.SaleService.ListTransactions(s.ctx)
				if err != nil {
					return s.out.Fail("failed to list transactions", err)
				}
				return s.out.Success(transactions, func(w io.Writer) {
					renderTransactions(w, transactions)
				})
			})
		},
	}
}

func newTransactionsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a sale and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return newFormatter(opts, cmd).Fail("invalid transaction id", err)
			}

			return withSession(opts, cmd, func(s *session) error {
				if err := s.services.SaleService.DeleteTransaction(s.ctx, id); err != nil {
					return s.out.Fail("failed to delete transaction", err)
				}
				return s.out.Success(map[string]int64{"deleted": id}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted transaction %d\n", id)
				})
			})
		},
	}
}

func renderTransactions(w io.Writer, transactions []*models.Transaction) {
	if len(transactions) == 0 {
		fmt.Fprintln(w, "No transactions.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, t := range transactions {
		fmt.Fprintf(tw, "#%d\t%s %s\t%.2f %s\n", t.ID, t.Date, t.Time, t.TotalAmount, t.Currency)
		for _, item := range t.Items {
			fmt.Fprintf(tw, "\t  %s\t%g %s x %.2f = %.2f\n", item.Name, item.Quantity, item.Unit, item.Price, item.Subtotal)
		}
	}
	tw.Flush()
}

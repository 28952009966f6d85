package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/services"
)

// ProductAddOptions holds flags for products add.
type ProductAddOptions struct {
	*RootOptions
	Name  string
	Price float64
	Unit  string
}

// NewProductsCommand creates the products command group.
func NewProductsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the product catalog",
	}

	cmd.AddCommand(newProductsListCommand(rootOpts))
	cmd.AddCommand(newProductsAddCommand(rootOpts))
	cmd.AddCommand(newProductsDeleteCommand(rootOpts))

	return cmd
}

func newProductsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products, most recently added first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(s *session) error {
				products, err := s.services.ProductService.ListProducts(s.ctx)
				if err != nil {
					return s.out.Fail("failed to list products", err)
				}
				return s.out.Success(products, func(w io.Writer) {
					renderProducts(w, products)
				})
			})
		},
	}
}

func newProductsAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalog",
		Example: `  posctl products add --name "Chicken Karahi" --price 1200 --unit plate
  posctl products add --name Chai --price 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts.RootOptions, cmd, func(s *session) error {
				product, err := s.services.ProductService.CreateProduct(s.ctx, &services.CreateProductRequest{
					Name:  opts.Name,
					Price: opts.Price,
					Unit:  opts.Unit,
				})
				if err != nil {
					return s.out.Fail("failed to add product", err)
				}
				return s.out.Success(product, func(w io.Writer) {
					fmt.Fprintf(w, "Added product %d: %s (%.2f per %s)\n",
						product.ID, product.Name, product.Price, product.Unit)
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "product name (required)")
	cmd.Flags().Float64Var(&opts.Price, "price", 0, "unit price")
	cmd.Flags().StringVar(&opts.Unit, "unit", models.DefaultUnit, "unit of sale")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProductsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product; past sales keep its name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return newFormatter(opts, cmd).Fail("invalid product id", err)
			}

			return withSession(opts, cmd, func(s *session) error {
				if err := s.services.ProductService.DeleteProduct(s.ctx, id); err != nil {
					return s.out.Fail("failed to delete product", err)
				}
				return s.out.Success(map[string]int64{"deleted": id}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted product %d\n", id)
				})
			})
		},
	}
}

func renderProducts(w io.Writer, products []*models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tUNIT")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\n", p.ID, p.Name, p.Price, p.Unit)
	}
	tw.Flush()
}

// parseID parses a positive row id from a command argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("%q is not a valid id", arg))
	}
	return id, nil
}

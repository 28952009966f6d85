package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/services"
)

// settingsFlags maps flag names to the request field they fill
var settingsFlags = []struct {
	name  string
	usage string
	field func(req *services.SaveSettingsRequest) **string
}{
	{"restaurant-name", "restaurant name", func(r *services.SaveSettingsRequest) **string { return &r.RestaurantName }},
	{"address", "street address", func(r *services.SaveSettingsRequest) **string { return &r.Address }},
	{"phone", "phone number", func(r *services.SaveSettingsRequest) **string { return &r.Phone }},
	{"email", "contact email", func(r *services.SaveSettingsRequest) **string { return &r.Email }},
	{"tax-rate", "tax rate in percent", func(r *services.SaveSettingsRequest) **string { return &r.TaxRate }},
	{"currency", "currency code", func(r *services.SaveSettingsRequest) **string { return &r.Currency }},
	{"opening-time", "opening time (HH:MM)", func(r *services.SaveSettingsRequest) **string { return &r.OpeningTime }},
	{"closing-time", "closing time (HH:MM)", func(r *services.SaveSettingsRequest) **string { return &r.ClosingTime }},
	{"receipt-footer", "text printed under receipts", func(r *services.SaveSettingsRequest) **string { return &r.ReceiptFooter }},
	{"logo", "logo reference", func(r *services.SaveSettingsRequest) **string { return &r.Logo }},
}

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or replace the restaurant settings",
	}

	cmd.AddCommand(newSettingsGetCommand(rootOpts))
	cmd.AddCommand(newSettingsSaveCommand(rootOpts))

	return cmd
}

func newSettingsGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, cmd, func(s *session) error {
				settings, err := s.services.SettingsService.GetSettings(s.ctx)
				if err != nil {
					return s.out.Fail("failed to read settings", err)
				}
				return s.out.Success(settings, func(w io.Writer) {
					renderSettings(w, settings)
				})
			})
		},
	}
}

func newSettingsSaveCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Replace every settings field",
		Long: `Replace the settings row. Every field is written: fields without a
flag are cleared.`,
		Example: `  posctl settings save --restaurant-name "Lahore Tikka House" --currency PKR --opening-time 11:00`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &services.SaveSettingsRequest{}
			for _, f := range settingsFlags {
				if !cmd.Flags().Changed(f.name) {
					continue
				}
				value, err := cmd.Flags().GetString(f.name)
				if err != nil {
					return newFormatter(opts, cmd).Fail("invalid flag", WrapExitError(ExitCommandError, f.name, err))
				}
				*f.field(req) = models.StringPtr(value)
			}

			return withSession(opts, cmd, func(s *session) error {
				settings, err := s.services.SettingsService.SaveSettings(s.ctx, req)
				if err != nil {
					return s.out.Fail("failed to save settings", err)
				}
				return s.out.Success(settings, func(w io.Writer) {
					fmt.Fprintln(w, "Settings saved.")
					renderSettings(w, settings)
				})
			})
		},
	}

	for _, f := range settingsFlags {
		cmd.Flags().String(f.name, "", f.usage)
	}

	return cmd
}

func renderSettings(w io.Writer, settings *models.Settings) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		label string
		value *string
	}{
		{"Restaurant", settings.RestaurantName},
		{"Address", settings.Address},
		{"Phone", settings.Phone},
		{"Email", settings.Email},
		{"Tax rate", settings.TaxRate},
		{"Currency", settings.Currency},
		{"Opening time", settings.OpeningTime},
		{"Closing time", settings.ClosingTime},
		{"Receipt footer", settings.ReceiptFooter},
		{"Logo", settings.Logo},
	}
	for _, row := range rows {
		value := "-"
		if row.value != nil {
			value = *row.value
		}
		fmt.Fprintf(tw, "%s:\t%s\n", row.label, value)
	}
	tw.Flush()
}

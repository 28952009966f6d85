package models

// SettingsID is the key of the single settings row.
const SettingsID = 1

// Seed values written the first time the schema is initialized.
const (
	DefaultRestaurantName = "Restaurant Management System"
	DefaultCurrency       = "PKR"
	DefaultReceiptFooter  = "Thank you for your business!"
)

// Settings holds the business configuration (singleton). Every field is
// optional; a nil field is stored as NULL and serialized as null.
type Settings struct {
	RestaurantName *string `json:"restaurant_name" db:"restaurant_name"`
	Address        *string `json:"address" db:"address"`
	Phone          *string `json:"phone" db:"phone"`
	Email          *string `json:"email" db:"email"`
	TaxRate        *string `json:"tax_rate" db:"tax_rate"`
	Currency       *string `json:"currency" db:"currency"`
	OpeningTime    *string `json:"opening_time" db:"opening_time"`
	ClosingTime    *string `json:"closing_time" db:"closing_time"`
	ReceiptFooter  *string `json:"receipt_footer" db:"receipt_footer"`
	Logo           *string `json:"logo" db:"logo"`
}

// DefaultSettings returns the seed row.
func DefaultSettings() *Settings {
	return &Settings{
		RestaurantName: StringPtr(DefaultRestaurantName),
		Currency:       StringPtr(DefaultCurrency),
		ReceiptFooter:  StringPtr(DefaultReceiptFooter),
	}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

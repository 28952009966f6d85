package models

// SaleItem is one line of a sale as submitted by the till. The product
// name is copied, not referenced, so history survives catalog changes.
type SaleItem struct {
	Name     string  `json:"name" db:"product_name"`
	Price    float64 `json:"price" db:"price"`
	Quantity float64 `json:"quantity" db:"quantity"`
	Unit     string  `json:"unit" db:"unit"`
}

// LineTotal returns price times quantity.
func (i SaleItem) LineTotal() float64 {
	return i.Price * i.Quantity
}

// Sale is the payload for recording a completed order
type Sale struct {
	Products    []SaleItem `json:"products"`
	TotalAmount float64    `json:"total_amount"`
	Currency    string     `json:"currency"`
}

// ItemsTotal sums the line totals of all items. The store records the
// supplied total as-is; this is for callers that want to cross-check.
func (s *Sale) ItemsTotal() float64 {
	var total float64
	for _, item := range s.Products {
		total += item.LineTotal()
	}
	return total
}

// Transaction is a stored sale with its items
type Transaction struct {
	ID          int64             `json:"id" db:"id"`
	Items       []TransactionItem `json:"items" db:"-"`
	TotalAmount float64           `json:"total_amount" db:"total_amount"`
	Currency    string            `json:"currency" db:"currency"`
	Date        string            `json:"date" db:"date"`
	Time        string            `json:"time" db:"time"`
}

// TransactionItem is a stored sale line with its computed subtotal
type TransactionItem struct {
	SaleItem
	Subtotal float64 `json:"subtotal" db:"-"`
}

// NewTransactionItem wraps a stored line and computes its subtotal.
func NewTransactionItem(item SaleItem) TransactionItem {
	return TransactionItem{
		SaleItem: item,
		Subtotal: item.LineTotal(),
	}
}

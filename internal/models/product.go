package models

import (
	"strings"
	"time"
)

// DefaultUnit is the unit stored when a product is added without one.
const DefaultUnit = "item"

// Product represents a catalog entry that can be rung up at the till
type Product struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Unit      string    `json:"unit" db:"unit"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewProduct creates a product ready for insertion. The identity and
// creation timestamp are assigned by the store.
func NewProduct(name string, price float64, unit string) *Product {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = DefaultUnit
	}
	return &Product{
		Name:  name,
		Price: price,
		Unit:  unit,
	}
}

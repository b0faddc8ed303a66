package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                int
	Batch             string
	Name              string
	Price             decimal.Decimal
	AvailableQuantity int
	EntryDate         time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasStockFor reports whether the product can cover the requested quantity.
func (p Product) HasStockFor(quantity int) bool {
	return p.AvailableQuantity >= quantity
}

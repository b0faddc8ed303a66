package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID                int             `json:"id"`
	Batch             string          `json:"batch"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	AvailableQuantity int             `json:"availableQuantity"`
	EntryDate         time.Time       `json:"entryDate"`
}

type CreateProductRequest struct {
	Batch             string          `json:"batch"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	AvailableQuantity int             `json:"availableQuantity"`
	EntryDate         time.Time       `json:"entryDate"`
}

type UpdateProductRequest struct {
	Batch             *string          `json:"batch,omitempty"`
	Name              *string          `json:"name,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	AvailableQuantity *int             `json:"availableQuantity,omitempty"`
	EntryDate         *time.Time       `json:"entryDate,omitempty"`
}

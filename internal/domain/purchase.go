package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Purchase struct {
	ID        uint
	ClientID  int
	Total     decimal.Decimal
	CreatedAt time.Time
}

type PurchaseLineItem struct {
	ID              uint
	PurchaseID      uint
	ProductID       int
	Quantity        int
	PriceAtPurchase decimal.Decimal
}

// Subtotal is the line contribution to the purchase total, computed from the
// price snapshot taken at purchase time, never from the live product price.
func (li PurchaseLineItem) Subtotal() decimal.Decimal {
	return li.PriceAtPurchase.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Invoice is the read-only projection of a committed purchase returned to
// the caller. Product name and batch are display fields reloaded at read
// time; PriceAtPurchase stays the frozen snapshot.
type Invoice struct {
	PurchaseID uint
	ClientID   int
	Total      decimal.Decimal
	Date       time.Time
	Items      []InvoiceItem
}

type InvoiceItem struct {
	ProductID       int
	ProductName     string
	Batch           string
	Quantity        int
	PriceAtPurchase decimal.Decimal
}

func (it InvoiceItem) Subtotal() decimal.Decimal {
	return it.PriceAtPurchase.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

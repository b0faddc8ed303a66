package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebas-aldana/brm-backend/internal/domain"
)

type InvoiceResponse struct {
	TraceID    string           `json:"traceId"`
	PurchaseID uint             `json:"purchaseId"`
	ClientID   int              `json:"clientId"`
	Total      decimal.Decimal  `json:"total"`
	Date       time.Time        `json:"date"`
	Items      []InvoiceItemDTO `json:"items"`
}

type InvoiceItemDTO struct {
	ProductID       int             `json:"productId"`
	ProductName     string          `json:"productName"`
	Batch           string          `json:"batch"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
}

func NewInvoiceResponse(traceID string, inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemDTO, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemDTO{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Batch:           item.Batch,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		}
	}

	return InvoiceResponse{
		TraceID:    traceID,
		PurchaseID: inv.PurchaseID,
		ClientID:   inv.ClientID,
		Total:      inv.Total,
		Date:       inv.Date,
		Items:      items,
	}
}

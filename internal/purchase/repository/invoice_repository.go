package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sebas-aldana/brm-backend/internal/domain"
	"github.com/sebas-aldana/brm-backend/internal/errors"
)

type MySQLInvoiceRepository struct {
	db *sql.DB
}

func NewMySQLInvoiceRepository(db *sql.DB) *MySQLInvoiceRepository {
	return &MySQLInvoiceRepository{db: db}
}

// FindByPurchaseID reloads a committed purchase with its line items joined
// to the product's display fields. Prices come from the line item snapshot,
// never from the live product row; a line item whose product was deleted
// keeps its snapshot and comes back with empty display fields.
func (r *MySQLInvoiceRepository) FindByPurchaseID(ctx context.Context, purchaseID uint) (*domain.Invoice, error) {
	query := `SELECT id, client_id, total, created_at FROM purchases WHERE id = ?`

	var inv domain.Invoice
	err := r.db.QueryRowContext(ctx, query, purchaseID).Scan(
		&inv.PurchaseID, &inv.ClientID, &inv.Total, &inv.Date,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("purchase with id %d not found", purchaseID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying purchase: %w", err)
	}

	items, err := r.findItems(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	inv.Items = items

	return &inv, nil
}

// FindByClientID returns the client's committed purchases, newest first.
func (r *MySQLInvoiceRepository) FindByClientID(ctx context.Context, clientID int) ([]domain.Invoice, error) {
	query := `SELECT id, client_id, total, created_at FROM purchases WHERE client_id = ? ORDER BY created_at DESC`
	return r.findInvoices(ctx, query, clientID)
}

// FindAll returns every committed purchase, newest first.
func (r *MySQLInvoiceRepository) FindAll(ctx context.Context) ([]domain.Invoice, error) {
	query := `SELECT id, client_id, total, created_at FROM purchases ORDER BY created_at DESC`
	return r.findInvoices(ctx, query)
}

func (r *MySQLInvoiceRepository) findInvoices(ctx context.Context, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying purchases: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(&inv.PurchaseID, &inv.ClientID, &inv.Total, &inv.Date); err != nil {
			return nil, fmt.Errorf("scanning purchase row: %w", err)
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase rows: %w", err)
	}

	for i := range invoices {
		items, err := r.findItems(ctx, invoices[i].PurchaseID)
		if err != nil {
			return nil, err
		}
		invoices[i].Items = items
	}

	return invoices, nil
}

// findItems loads the line items of one purchase. The products join is an
// outer join: a line item must survive deletion of its product, otherwise the
// invoice total would stop matching the sum of its visible items.
func (r *MySQLInvoiceRepository) findItems(ctx context.Context, purchaseID uint) ([]domain.InvoiceItem, error) {
	query := `
		SELECT li.product_id, p.name, p.batch, li.quantity, li.price_at_purchase
		FROM purchase_line_items li
		LEFT JOIN products p ON p.id = li.product_id
		WHERE li.purchase_id = ?
		ORDER BY li.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("querying purchase line items: %w", err)
	}
	defer rows.Close()

	var items []domain.InvoiceItem
	for rows.Next() {
		var item domain.InvoiceItem
		var name, batch sql.NullString
		err := rows.Scan(&item.ProductID, &name, &batch, &item.Quantity, &item.PriceAtPurchase)
		if err != nil {
			return nil, fmt.Errorf("scanning line item row: %w", err)
		}
		item.ProductName = name.String
		item.Batch = batch.String
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line item rows: %w", err)
	}

	return items, nil
}

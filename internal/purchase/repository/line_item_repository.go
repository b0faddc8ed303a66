package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sebas-aldana/brm-backend/internal/domain"
)

type MySQLLineItemRepository struct {
	db *sql.DB
}

func NewMySQLLineItemRepository(db *sql.DB) *MySQLLineItemRepository {
	return &MySQLLineItemRepository{db: db}
}

// Insert persists one line item inside the caller's transaction. The price
// snapshot is whatever the coordinator captured under the row lock.
func (r *MySQLLineItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.PurchaseLineItem) (uint, error) {
	query := `
		INSERT INTO purchase_line_items (purchase_id, product_id, quantity, price_at_purchase)
		VALUES (?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query, item.PurchaseID, item.ProductID, item.Quantity, item.PriceAtPurchase)
	if err != nil {
		return 0, fmt.Errorf("inserting purchase line item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sebas-aldana/brm-backend/internal/domain"
	"github.com/sebas-aldana/brm-backend/internal/errors"
)

type MySQLPurchaseRepository struct {
	db *sql.DB
}

func NewMySQLPurchaseRepository(db *sql.DB) *MySQLPurchaseRepository {
	return &MySQLPurchaseRepository{db: db}
}

// Insert persists the purchase header inside the caller's transaction.
// It never commits; the coordinator owns the transaction boundary.
func (r *MySQLPurchaseRepository) Insert(ctx context.Context, tx *sql.Tx, clientID int, total decimal.Decimal) (uint, error) {
	query := `INSERT INTO purchases (client_id, total) VALUES (?, ?)`

	result, err := tx.ExecContext(ctx, query, clientID, total)
	if err != nil {
		return 0, fmt.Errorf("inserting purchase: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLPurchaseRepository) FindByID(ctx context.Context, id uint) (*domain.Purchase, error) {
	query := `SELECT id, client_id, total, created_at FROM purchases WHERE id = ?`

	var p domain.Purchase
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.ClientID, &p.Total, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("purchase with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying purchase by id: %w", err)
	}

	return &p, nil
}

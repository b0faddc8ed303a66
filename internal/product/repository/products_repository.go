package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sebas-aldana/brm-backend/internal/domain"
	"github.com/sebas-aldana/brm-backend/internal/errors"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

const productColumns = `id, batch, name, price, available_quantity, entry_date, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Batch, &p.Name, &p.Price, &p.AvailableQuantity,
		&p.EntryDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDForUpdate reads the product row under an exclusive lock held for
// the duration of tx. Blocks while another transaction holds the same lock.
func (r *MySQLProductRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ? FOR UPDATE`, productColumns)

	product, err := scanProduct(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product for update: %w", err)
	}

	return product, nil
}

// DecrementStock applies a staged decrement. The caller must hold the row
// lock from FindByIDForUpdate in the same tx and must have verified
// sufficiency; a zero-row update here means that protocol was violated.
func (r *MySQLProductRepository) DecrementStock(ctx context.Context, tx *sql.Tx, id int, quantity int) error {
	query := `
		UPDATE products
		SET available_quantity = available_quantity - ?
		WHERE id = ? AND available_quantity >= ?
	`

	result, err := tx.ExecContext(ctx, query, quantity, id, quantity)
	if err != nil {
		return fmt.Errorf("decrementing stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewInternalError(
			fmt.Sprintf("stock decrement precondition violated for product %d", id), nil)
	}

	return nil
}

func (r *MySQLProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ?`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return product, nil
}

func (r *MySQLProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY name ASC`, productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLProductRepository) Insert(ctx context.Context, p domain.Product) (int, error) {
	query := `
		INSERT INTO products (batch, name, price, available_quantity, entry_date)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, p.Batch, p.Name, p.Price, p.AvailableQuantity, p.EntryDate)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLProductRepository) Update(ctx context.Context, p domain.Product) error {
	query := `
		UPDATE products
		SET batch = ?, name = ?, price = ?, available_quantity = ?, entry_date = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, p.Batch, p.Name, p.Price, p.AvailableQuantity, p.EntryDate, p.ID)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", p.ID))
	}

	return nil
}

func (r *MySQLProductRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	return nil
}

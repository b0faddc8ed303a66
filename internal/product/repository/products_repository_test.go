package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebas-aldana/brm-backend/internal/domain"
	"github.com/sebas-aldana/brm-backend/internal/errors"
	"github.com/sebas-aldana/brm-backend/internal/testutil"
)

// Unit Tests

func TestNewMySQLProductRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLProductRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func TestProductRepository_FindByID_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	id := testutil.InsertTestProduct(t, db, "Widget", "5.00", 10)

	product, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, product.ID)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, "B-001", product.Batch)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, 10, product.AvailableQuantity)
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	product, err := repo.FindByID(context.Background(), 9999)
	assert.Nil(t, product)

	nfe, ok := errors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Contains(t, nfe.Message, "9999")
}

func TestProductRepository_FindAll_OrderedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	testutil.InsertTestProduct(t, db, "Zebra", "1.00", 1)
	testutil.InsertTestProduct(t, db, "Apple", "1.00", 1)

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Apple", products[0].Name)
	assert.Equal(t, "Zebra", products[1].Name)
}

func TestProductRepository_InsertUpdateDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	id, err := repo.Insert(context.Background(), domain.Product{
		Batch:             "B-77",
		Name:              "Widget",
		Price:             decimal.RequireFromString("3.25"),
		AvailableQuantity: 4,
		EntryDate:         time.Now(),
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	err = repo.Update(context.Background(), domain.Product{
		ID:                id,
		Batch:             "B-78",
		Name:              "Widget v2",
		Price:             decimal.RequireFromString("3.50"),
		AvailableQuantity: 6,
		EntryDate:         time.Now(),
	})
	require.NoError(t, err)

	updated, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, 6, updated.AvailableQuantity)

	err = repo.Delete(context.Background(), id)
	require.NoError(t, err)

	_, err = repo.FindByID(context.Background(), id)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_Delete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	err := repo.Delete(context.Background(), 9999)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_FindByIDForUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	id := testutil.InsertTestProduct(t, db, "Widget", "5.00", 10)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	product, err := repo.FindByIDForUpdate(context.Background(), tx, id)
	require.NoError(t, err)
	assert.Equal(t, 10, product.AvailableQuantity)

	_, err = repo.FindByIDForUpdate(context.Background(), tx, 9999)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_DecrementStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	id := testutil.InsertTestProduct(t, db, "Widget", "5.00", 10)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	_, err = repo.FindByIDForUpdate(context.Background(), tx, id)
	require.NoError(t, err)

	err = repo.DecrementStock(context.Background(), tx, id, 4)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	product, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 6, product.AvailableQuantity)
}

func TestProductRepository_DecrementStock_PreconditionViolated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	id := testutil.InsertTestProduct(t, db, "Widget", "5.00", 3)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	// Skipping the locked read and decrementing past the available quantity
	// is a protocol violation, surfaced as an internal fault.
	err = repo.DecrementStock(context.Background(), tx, id, 5)

	ie, ok := errors.IsInternalError(err)
	require.True(t, ok, "expected InternalError, got %v", err)
	assert.Contains(t, ie.Message, "precondition")
}

package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the local test database. Integration tests are skipped
// when no MySQL instance named 'brm_test' is reachable on localhost:3306.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/brm_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"purchase_line_items", "purchases", "products", "users"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables the tests need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(150) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'client',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		batch VARCHAR(100) NOT NULL,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		available_quantity INT NOT NULL,
		entry_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT chk_available_quantity CHECK (available_quantity >= 0)
	)`

	createPurchasesTable := `
	CREATE TABLE IF NOT EXISTS purchases (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		client_id INT NOT NULL,
		total DECIMAL(10,2) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (client_id) REFERENCES users(id),
		INDEX idx_client (client_id)
	)`

	createLineItemsTable := `
	CREATE TABLE IF NOT EXISTS purchase_line_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		purchase_id INT UNSIGNED NOT NULL,
		product_id INT NOT NULL,
		quantity INT NOT NULL,
		price_at_purchase DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (purchase_id) REFERENCES purchases(id) ON DELETE CASCADE,
		INDEX idx_purchase (purchase_id),
		INDEX idx_product (product_id)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"users", createUsersTable},
		{"products", createProductsTable},
		{"purchases", createPurchasesTable},
		{"purchase_line_items", createLineItemsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// InsertTestUser inserts a user and returns its id.
func InsertTestUser(t *testing.T, db *sql.DB, name, email, role string) int {
	result, err := db.Exec(
		`INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, 'x', ?)`,
		name, email, role,
	)
	if err != nil {
		t.Fatalf("failed to insert test user: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get user id: %v", err)
	}
	return int(id)
}

// InsertTestProduct inserts a product and returns its id.
func InsertTestProduct(t *testing.T, db *sql.DB, name string, price string, quantity int) int {
	result, err := db.Exec(
		`INSERT INTO products (batch, name, price, available_quantity, entry_date) VALUES ('B-001', ?, ?, ?, NOW())`,
		name, price, quantity,
	)
	if err != nil {
		t.Fatalf("failed to insert test product: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get product id: %v", err)
	}
	return int(id)
}

package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stocktrack/internal/models"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB creates a pooled connection for testing
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			connString = "host=localhost port=5432 user=postgres password=postgres dbname=stocktrack_test sslmode=disable"
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestTenant creates a test tenant for testing
func SetupTestTenant(t *testing.T, db *TestDB) uuid.UUID {
	t.Helper()

	tenantID := uuid.New()
	query := `
		INSERT INTO tenants (id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := db.Pool.Exec(context.Background(), query, tenantID, "Test Tenant", "active")
	if err != nil {
		t.Fatalf("Failed to create test tenant: %v", err)
	}

	return tenantID
}

// SetupTestSupplier creates a test supplier for testing
func SetupTestSupplier(t *testing.T, db *TestDB, tenantID uuid.UUID) *models.Supplier {
	t.Helper()

	supplier := &models.Supplier{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     "Test Supplier",
	}

	query := `
		INSERT INTO suppliers (id, tenant_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	if _, err := db.Pool.Exec(context.Background(), query, supplier.ID, supplier.TenantID, supplier.Name); err != nil {
		t.Fatalf("Failed to create test supplier: %v", err)
	}

	return supplier
}

// SetupTestProduct creates a test product for testing
func SetupTestProduct(t *testing.T, db *TestDB, tenantID, supplierID uuid.UUID, quantity, minimum int) *models.Product {
	t.Helper()

	description := "Test product description"
	product := &models.Product{
		ID:                uuid.New(),
		TenantID:          tenantID,
		SupplierID:        supplierID,
		Name:              "Test Product",
		Description:       &description,
		UnitPrice:         10.99,
		QuantityAvailable: quantity,
		MinimumQuantity:   minimum,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	query := `
		INSERT INTO products (id, tenant_id, supplier_id, name, description, unit_price, quantity_available, minimum_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		product.ID, product.TenantID, product.SupplierID, product.Name, product.Description,
		product.UnitPrice, product.QuantityAvailable, product.MinimumQuantity, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}

	return product
}

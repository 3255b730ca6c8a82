package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stocktrack/internal/models"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error)
	HasOrderReferences(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

type productRepo struct {
	db Database
}

func NewProductRepository(db Database) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, tenant_id, supplier_id, name, description, unit_price, quantity_available, minimum_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.TenantID, product.SupplierID, product.Name, product.Description, product.UnitPrice, product.QuantityAvailable, product.MinimumQuantity)
	return mapStoreError(err)
}

func (r *productRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, tenant_id, supplier_id, name, description, unit_price, quantity_available, minimum_quantity, created_at, updated_at
		FROM products
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&product.ID, &product.TenantID, &product.SupplierID, &product.Name, &product.Description, &product.UnitPrice, &product.QuantityAvailable, &product.MinimumQuantity, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("product: %w", mapStoreError(err))
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET supplier_id = $1, name = $2, description = $3, unit_price = $4, quantity_available = $5, minimum_quantity = $6, updated_at = NOW()
		WHERE tenant_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, product.SupplierID, product.Name, product.Description, product.UnitPrice, product.QuantityAvailable, product.MinimumQuantity, product.TenantID, product.ID)
	return mapStoreError(err)
}

func (r *productRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM products WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return mapStoreError(err)
}

func (r *productRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT id, tenant_id, supplier_id, name, description, unit_price, quantity_available, minimum_quantity, created_at, updated_at
		FROM products
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.TenantID, &product.SupplierID, &product.Name, &product.Description, &product.UnitPrice, &product.QuantityAvailable, &product.MinimumQuantity, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// HasOrderReferences reports whether any order item still points at the
// product. Historical orders win over deletion convenience.
func (r *productRepo) HasOrderReferences(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var referenced bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM order_items WHERE tenant_id = $1 AND product_id = $2
		)
	`
	if err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&referenced); err != nil {
		return false, mapStoreError(err)
	}
	return referenced, nil
}

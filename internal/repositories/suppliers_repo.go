package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stocktrack/internal/models"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Supplier, error)
	GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Supplier, error)
	HasReferences(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

type supplierRepo struct {
	db Database
}

func NewSupplierRepository(db Database) SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (id, tenant_id, name, address, contact_person, phone_number, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, supplier.ID, supplier.TenantID, supplier.Name, supplier.Address, supplier.ContactPerson, supplier.PhoneNumber, supplier.Email)
	return mapStoreError(err)
}

func (r *supplierRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `
		SELECT id, tenant_id, name, address, contact_person, phone_number, email, created_at, updated_at
		FROM suppliers
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&supplier.ID, &supplier.TenantID, &supplier.Name, &supplier.Address, &supplier.ContactPerson, &supplier.PhoneNumber, &supplier.Email, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", mapStoreError(err))
	}
	return supplier, nil
}

func (r *supplierRepo) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `
		SELECT id, tenant_id, name, address, contact_person, phone_number, email, created_at, updated_at
		FROM suppliers
		WHERE tenant_id = $1 AND name = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, name).Scan(&supplier.ID, &supplier.TenantID, &supplier.Name, &supplier.Address, &supplier.ContactPerson, &supplier.PhoneNumber, &supplier.Email, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", mapStoreError(err))
	}
	return supplier, nil
}

func (r *supplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, address = $2, contact_person = $3, phone_number = $4, email = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, supplier.Name, supplier.Address, supplier.ContactPerson, supplier.PhoneNumber, supplier.Email, supplier.TenantID, supplier.ID)
	return mapStoreError(err)
}

func (r *supplierRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM suppliers WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return mapStoreError(err)
}

func (r *supplierRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Supplier, error) {
	query := `
		SELECT id, tenant_id, name, address, contact_person, phone_number, email, created_at, updated_at
		FROM suppliers
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		supplier := &models.Supplier{}
		if err := rows.Scan(&supplier.ID, &supplier.TenantID, &supplier.Name, &supplier.Address, &supplier.ContactPerson, &supplier.PhoneNumber, &supplier.Email, &supplier.CreatedAt, &supplier.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}

// HasReferences reports whether any product or order still points at the
// supplier. Deletion is refused while this holds.
func (r *supplierRepo) HasReferences(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var referenced bool
	query := `
		SELECT EXISTS (SELECT 1 FROM products WHERE tenant_id = $1 AND supplier_id = $2)
		    OR EXISTS (SELECT 1 FROM orders WHERE tenant_id = $1 AND supplier_id = $2)
	`
	if err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&referenced); err != nil {
		return false, mapStoreError(err)
	}
	return referenced, nil
}

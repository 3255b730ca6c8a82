package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stocktrack/internal/models"
)

type TenantRepository interface {
	// CreateWithOwner inserts the tenant and its first user in one transaction.
	CreateWithOwner(ctx context.Context, tenant *models.Tenant, owner *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*models.Tenant, error)
}

type tenantRepo struct {
	db Database
}

func NewTenantRepository(db Database) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) CreateWithOwner(ctx context.Context, tenant *models.Tenant, owner *models.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapStoreError(err)
	}
	defer tx.Rollback(ctx)

	tenantQuery := `
		INSERT INTO tenants (id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, tenantQuery, tenant.ID, tenant.Name, tenant.Status); err != nil {
		return mapStoreError(err)
	}

	ownerQuery := `
		INSERT INTO users (id, tenant_id, email, password_hash, first_name, last_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, ownerQuery, owner.ID, owner.TenantID, owner.Email, owner.PasswordHash, owner.FirstName, owner.LastName, owner.Status); err != nil {
		return mapStoreError(err)
	}

	return mapStoreError(tx.Commit(ctx))
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, name, status, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&tenant.ID, &tenant.Name, &tenant.Status, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("tenant: %w", mapStoreError(err))
	}
	return tenant, nil
}

func (r *tenantRepo) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	query := `
		SELECT id, name, status, created_at, updated_at
		FROM tenants
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant := &models.Tenant{}
		if err := rows.Scan(&tenant.ID, &tenant.Name, &tenant.Status, &tenant.CreatedAt, &tenant.UpdatedAt); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

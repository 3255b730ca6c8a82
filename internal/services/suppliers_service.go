package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stocktrack/internal/common"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"
)

type SupplierService interface {
	Create(ctx context.Context, tenantID uuid.UUID, supplier *models.Supplier) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, tenantID uuid.UUID, supplier *models.Supplier) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Supplier, error)
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
}

func NewSupplierService(supplierRepo repositories.SupplierRepository) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
	}
}

func (s *supplierService) Create(ctx context.Context, tenantID uuid.UUID, supplier *models.Supplier) error {
	if err := common.ValidateRequiredString(supplier.Name, "name"); err != nil {
		return err
	}

	// Supplier names are unique per tenant
	existing, err := s.supplierRepo.GetByName(ctx, tenantID, supplier.Name)
	if err == nil && existing != nil {
		return fmt.Errorf("%w: supplier with this name already exists", common.ErrConflict)
	}

	supplier.TenantID = tenantID
	supplier.ID = uuid.New()

	return s.supplierRepo.Create(ctx, supplier)
}

func (s *supplierService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, tenantID, id)
}

func (s *supplierService) Update(ctx context.Context, tenantID uuid.UUID, supplier *models.Supplier) error {
	if err := common.ValidateRequiredString(supplier.Name, "name"); err != nil {
		return err
	}

	supplier.TenantID = tenantID
	return s.supplierRepo.Update(ctx, supplier)
}

// Delete removes a supplier unless orders or products still reference it.
// Referential integrity takes precedence over convenience: the caller gets
// Conflict and the store is left untouched.
func (s *supplierService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.supplierRepo.GetByID(ctx, tenantID, id); err != nil {
		return err
	}

	referenced, err := s.supplierRepo.HasReferences(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: supplier is referenced by existing products or orders", common.ErrConflict)
	}

	return s.supplierRepo.Delete(ctx, tenantID, id)
}

func (s *supplierService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Supplier, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.supplierRepo.List(ctx, tenantID, limit, offset)
}

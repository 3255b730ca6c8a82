package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stocktrack/internal/caching"
	"stocktrack/internal/common"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"
)

const productCacheTTL = 5 * time.Minute

type ProductService interface {
	Create(ctx context.Context, tenantID uuid.UUID, product *models.Product) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	supplierRepo repositories.SupplierRepository
	cacheService caching.CacheService
	logger       *zap.Logger
}

func NewProductService(productRepo repositories.ProductRepository, supplierRepo repositories.SupplierRepository, cacheService caching.CacheService, logger *zap.Logger) ProductService {
	return &productService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		cacheService: cacheService,
		logger:       logger,
	}
}

func (s *productService) Create(ctx context.Context, tenantID uuid.UUID, product *models.Product) error {
	if err := common.ValidateRequiredString(product.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeInt(product.QuantityAvailable, "quantity_available"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeInt(product.MinimumQuantity, "minimum_quantity"); err != nil {
		return err
	}
	if product.UnitPrice < 0 {
		return fmt.Errorf("%w: unit_price must not be negative", common.ErrValidation)
	}

	// The supplier must exist and belong to the same tenant.
	if _, err := s.supplierRepo.GetByID(ctx, tenantID, product.SupplierID); err != nil {
		return err
	}

	product.TenantID = tenantID
	product.ID = uuid.New()

	return s.productRepo.Create(ctx, product)
}

func (s *productService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	if cached, err := s.cacheService.GetProduct(ctx, tenantID, id); cached != nil {
		return cached, nil
	} else if err != nil {
		// Cache errors never fail the read.
		s.logger.Warn("product cache read failed", zap.String("product_id", id.String()), zap.Error(err))
	}

	product, err := s.productRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetProduct(ctx, tenantID, product, productCacheTTL); err != nil {
		s.logger.Warn("product cache write failed", zap.String("product_id", id.String()), zap.Error(err))
	}

	return product, nil
}

// Delete removes a product unless an order item still references it.
func (s *productService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.productRepo.GetByID(ctx, tenantID, id); err != nil {
		return err
	}

	referenced, err := s.productRepo.HasOrderReferences(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: product is referenced by existing orders", common.ErrConflict)
	}

	if err := s.productRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	if err := s.cacheService.DeleteProduct(ctx, tenantID, id); err != nil {
		s.logger.Warn("failed to invalidate product cache", zap.String("product_id", id.String()), zap.Error(err))
	}
	if err := s.cacheService.DeleteLowStockReport(ctx, tenantID); err != nil {
		s.logger.Warn("failed to invalidate low-stock cache", zap.String("tenant_id", tenantID.String()), zap.Error(err))
	}
	return nil
}

func (s *productService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.productRepo.List(ctx, tenantID, limit, offset)
}

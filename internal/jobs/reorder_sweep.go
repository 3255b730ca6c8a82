package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stocktrack/internal/repositories"
	"stocktrack/internal/services"
)

// ReorderSweeper is the safety net behind the inline reorder engine: it
// walks every active tenant's low-stock products and re-runs the quantity
// write at the current level. The engine's upsert is idempotent per
// (tenant, supplier, day), so products that already have a replenishment
// order today are left alone.
type ReorderSweeper struct {
	tenantRepo     repositories.TenantRepository
	reportRepo     repositories.ReportRepository
	orderRepo      repositories.OrderRepository
	reorderService services.ReorderService
	logger         *zap.Logger
}

func NewReorderSweeper(tenantRepo repositories.TenantRepository, reportRepo repositories.ReportRepository, orderRepo repositories.OrderRepository, reorderService services.ReorderService, logger *zap.Logger) *ReorderSweeper {
	return &ReorderSweeper{
		tenantRepo:     tenantRepo,
		reportRepo:     reportRepo,
		orderRepo:      orderRepo,
		reorderService: reorderService,
		logger:         logger,
	}
}

// Sweep runs one pass over all active tenants. Per-product failures are
// logged and skipped so one bad row never stalls the rest of the sweep.
func (s *ReorderSweeper) Sweep(ctx context.Context) error {
	tenants, err := s.tenantRepo.List(ctx, 1000, 0)
	if err != nil {
		s.logger.Error("reorder sweep could not list tenants", zap.Error(err))
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	var checked, ordered int
	for _, tenant := range tenants {
		if tenant.Status != "active" {
			continue
		}

		lowStock, err := s.reportRepo.LowStock(ctx, tenant.ID)
		if err != nil {
			s.logger.Warn("reorder sweep could not read low stock",
				zap.String("tenant_id", tenant.ID.String()), zap.Error(err))
			continue
		}

		// Suppliers with an existing replenishment order today were already
		// handled by the engine; checking first avoids taking a write lock
		// per product.
		covered := make(map[uuid.UUID]bool)

		for _, p := range lowStock {
			checked++
			if !covered[p.SupplierID] {
				if _, err := s.orderRepo.GetReplenishment(ctx, tenant.ID, p.SupplierID, today); err == nil {
					covered[p.SupplierID] = true
				}
			}
			if covered[p.SupplierID] {
				continue
			}

			result, err := s.reorderService.UpdateQuantity(ctx, tenant.ID, p.ProductID, p.QuantityAvailable)
			if err != nil {
				s.logger.Warn("reorder sweep skipped product",
					zap.String("tenant_id", tenant.ID.String()),
					zap.String("product_id", p.ProductID.String()),
					zap.Error(err))
				continue
			}
			if result.OrderCreated {
				ordered++
			}
		}
	}

	s.logger.Info("reorder sweep completed",
		zap.Int("tenants", len(tenants)),
		zap.Int("products_checked", checked),
		zap.Int("orders_created", ordered))
	return nil
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stocktrack/internal/caching"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"
)

// Low stock changes with every quantity write, so the cache is short-lived
// and invalidated by the reorder engine on every mutation.
const lowStockCacheTTL = time.Minute

type ReportService interface {
	LowStock(ctx context.Context, tenantID uuid.UUID) ([]*models.LowStockProduct, error)
	TodayShipments(ctx context.Context, tenantID uuid.UUID) ([]*models.TodayShipmentRow, error)
	ProductsWithSuppliers(ctx context.Context, tenantID uuid.UUID) ([]*models.ProductWithSupplier, error)
}

type reportService struct {
	reportRepo   repositories.ReportRepository
	cacheService caching.CacheService
	logger       *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepository, cacheService caching.CacheService, logger *zap.Logger) ReportService {
	return &reportService{
		reportRepo:   reportRepo,
		cacheService: cacheService,
		logger:       logger,
	}
}

func (s *reportService) LowStock(ctx context.Context, tenantID uuid.UUID) ([]*models.LowStockProduct, error) {
	if cached, err := s.cacheService.GetLowStockReport(ctx, tenantID); cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("low-stock cache read failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
	}

	report, err := s.reportRepo.LowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		report = []*models.LowStockProduct{}
	}

	if err := s.cacheService.SetLowStockReport(ctx, tenantID, report, lowStockCacheTTL); err != nil {
		s.logger.Warn("low-stock cache write failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
	}
	return report, nil
}

func (s *reportService) TodayShipments(ctx context.Context, tenantID uuid.UUID) ([]*models.TodayShipmentRow, error) {
	rows, err := s.reportRepo.TodayShipments(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*models.TodayShipmentRow{}
	}
	return rows, nil
}

func (s *reportService) ProductsWithSuppliers(ctx context.Context, tenantID uuid.UUID) ([]*models.ProductWithSupplier, error) {
	rows, err := s.reportRepo.ProductsWithSuppliers(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*models.ProductWithSupplier{}
	}
	return rows, nil
}

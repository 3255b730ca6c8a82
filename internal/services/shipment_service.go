package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stocktrack/internal/common"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"
)

type ShipmentService interface {
	Create(ctx context.Context, tenantID uuid.UUID, shipmentDate, estimatedArrival time.Time, orderIDs []uuid.UUID) (*models.Shipment, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ShipmentWithOrders, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ShipmentWithOrders, error)
}

type shipmentService struct {
	shipmentRepo repositories.ShipmentRepository
}

func NewShipmentService(shipmentRepo repositories.ShipmentRepository) ShipmentService {
	return &shipmentService{
		shipmentRepo: shipmentRepo,
	}
}

func (s *shipmentService) Create(ctx context.Context, tenantID uuid.UUID, shipmentDate, estimatedArrival time.Time, orderIDs []uuid.UUID) (*models.Shipment, error) {
	if estimatedArrival.Before(shipmentDate) {
		return nil, fmt.Errorf("%w: estimated_arrival_date must not precede shipment_date", common.ErrValidation)
	}
	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("%w: shipment requires at least one order", common.ErrValidation)
	}

	shipment := &models.Shipment{
		ID:                   uuid.New(),
		TenantID:             tenantID,
		ShipmentDate:         shipmentDate,
		EstimatedArrivalDate: estimatedArrival,
	}
	// The repository links orders tenant-scoped inside one transaction; an
	// order belonging to another tenant fails the whole create.
	if err := s.shipmentRepo.Create(ctx, shipment, orderIDs); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *shipmentService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ShipmentWithOrders, error) {
	return s.shipmentRepo.GetByID(ctx, tenantID, id)
}

func (s *shipmentService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ShipmentWithOrders, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.shipmentRepo.List(ctx, tenantID, limit, offset)
}

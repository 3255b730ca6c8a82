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

// OrderLine is one requested product/quantity pair on a manual order.
type OrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type OrderService interface {
	Create(ctx context.Context, tenantID, supplierID uuid.UUID, orderDate time.Time, lines []OrderLine) (*models.Order, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.OrderWithItems, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.OrderWithItems, error)
}

type orderService struct {
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	productRepo   repositories.ProductRepository
	supplierRepo  repositories.SupplierRepository
}

func NewOrderService(orderRepo repositories.OrderRepository, orderItemRepo repositories.OrderItemRepository, productRepo repositories.ProductRepository, supplierRepo repositories.SupplierRepository) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
		supplierRepo:  supplierRepo,
	}
}

func (s *orderService) Create(ctx context.Context, tenantID, supplierID uuid.UUID, orderDate time.Time, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order requires at least one item", common.ErrValidation)
	}
	if _, err := s.supplierRepo.GetByID(ctx, tenantID, supplierID); err != nil {
		return nil, err
	}

	for _, line := range lines {
		if err := common.ValidatePositiveInt(line.Quantity, "quantity"); err != nil {
			return nil, err
		}
		product, err := s.productRepo.GetByID(ctx, tenantID, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product.SupplierID != supplierID {
			return nil, fmt.Errorf("%w: product %s does not belong to supplier %s", common.ErrValidation, line.ProductID, supplierID)
		}
	}

	order := &models.Order{
		ID:         uuid.New(),
		TenantID:   tenantID,
		SupplierID: supplierID,
		OrderDate:  orderDate,
	}
	items := make([]*models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, &models.OrderItem{
			ID:        uuid.New(),
			TenantID:  tenantID,
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	// Order and items land together or not at all.
	if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.OrderWithItems, error) {
	order, err := s.orderRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	supplier, err := s.supplierRepo.GetByID(ctx, tenantID, order.SupplierID)
	if err != nil {
		return nil, err
	}
	items, err := s.orderItemRepo.ListByOrder(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.OrderItem{}
	}
	return &models.OrderWithItems{
		Order:        *order,
		SupplierName: supplier.Name,
		Items:        items,
	}, nil
}

func (s *orderService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.OrderWithItems, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.orderRepo.ListWithItems(ctx, tenantID, limit, offset)
}

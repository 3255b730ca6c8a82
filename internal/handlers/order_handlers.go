package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stocktrack/internal/common"
	"stocktrack/internal/models"
	"stocktrack/internal/services"
)

// OrderHandlers handles order-related HTTP requests
type OrderHandlers struct {
	orderService services.OrderService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// ListOrdersRequest represents query parameters for listing orders
type ListOrdersRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListOrders handles getting a list of orders with their items
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListOrdersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	orders, err := h.orderService.List(ctx, tenantID, req.Limit, req.Offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if orders == nil {
		orders = []*models.OrderWithItems{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
	})
}

// CreateOrderRequest represents the order creation request payload
type CreateOrderRequest struct {
	SupplierID uuid.UUID            `json:"supplier_id" validate:"required"`
	OrderDate  string               `json:"order_date"`
	Items      []services.OrderLine `json:"items" validate:"required"`
}

// CreateOrder handles creating a new manual order
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.SupplierID == uuid.Nil {
		return common.SendValidationError(c, "supplier_id", "supplier_id is required")
	}

	orderDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.OrderDate != "" {
		d, err := common.ValidateDate(req.OrderDate, "order_date")
		if err != nil {
			return common.SendDomainError(c, err)
		}
		orderDate = d
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	order, err := h.orderService.Create(ctx, tenantID, req.SupplierID, orderDate, req.Items)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, order)
}

// GetOrder handles getting order details, including items, by ID
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	order, err := h.orderService.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

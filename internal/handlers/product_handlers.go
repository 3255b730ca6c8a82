package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stocktrack/internal/common"
	"stocktrack/internal/models"
	"stocktrack/internal/services"
)

// ProductHandlers handles product-related HTTP requests
type ProductHandlers struct {
	productService services.ProductService
	reorderService services.ReorderService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService, reorderService services.ReorderService) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
		reorderService: reorderService,
	}
}

// ListProductsRequest represents query parameters for listing products
type ListProductsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListProducts handles getting a list of products with tenant filtering
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	products, err := h.productService.List(ctx, tenantID, req.Limit, req.Offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if products == nil {
		products = []*models.Product{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
	})
}

// CreateProductRequest represents the product creation request payload
type CreateProductRequest struct {
	SupplierID        uuid.UUID `json:"supplier_id" validate:"required"`
	Name              string    `json:"name" validate:"required"`
	Description       *string   `json:"description"`
	UnitPrice         float64   `json:"unit_price"`
	QuantityAvailable int       `json:"quantity_available"`
	MinimumQuantity   int       `json:"minimum_quantity"`
}

// CreateProduct handles creating a new product
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	product := &models.Product{
		SupplierID:        req.SupplierID,
		Name:              req.Name,
		Description:       req.Description,
		UnitPrice:         req.UnitPrice,
		QuantityAvailable: req.QuantityAvailable,
		MinimumQuantity:   req.MinimumQuantity,
	}

	if err := h.productService.Create(ctx, tenantID, product); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, product)
}

// GetProduct handles getting product details by ID
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "product_id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	product, err := h.productService.GetByID(ctx, tenantID, productID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product. A product referenced by order
// items comes back as Conflict.
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "product_id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.productService.Delete(ctx, tenantID, productID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Product deleted successfully",
	})
}

// UpdateQuantityRequest represents the stock level update payload
type UpdateQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"`
}

// UpdateQuantity sets a product's stock level. When the new level drops
// under the product's minimum, a replenishment order for the supplier is
// created or topped up in the same transaction.
func (h *ProductHandlers) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.ProductID == uuid.Nil {
		return common.SendValidationError(c, "product_id", "product_id is required")
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	result, err := h.reorderService.UpdateQuantity(ctx, tenantID, req.ProductID, req.Quantity)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stocktrack/internal/common"
	"stocktrack/internal/models"
	"stocktrack/internal/services"
)

// SupplierHandlers handles supplier-related HTTP requests
type SupplierHandlers struct {
	supplierService services.SupplierService
}

// NewSupplierHandlers creates a new supplier handlers instance
func NewSupplierHandlers(supplierService services.SupplierService) *SupplierHandlers {
	return &SupplierHandlers{supplierService: supplierService}
}

// ListSuppliersRequest represents query parameters for listing suppliers
type ListSuppliersRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListSuppliers handles getting a list of suppliers with tenant filtering
func (h *SupplierHandlers) ListSuppliers(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListSuppliersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	suppliers, err := h.supplierService.List(ctx, tenantID, req.Limit, req.Offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if suppliers == nil {
		suppliers = []*models.Supplier{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
	})
}

// CreateSupplierRequest represents the supplier creation request payload
type CreateSupplierRequest struct {
	Name          string  `json:"name" validate:"required"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
	PhoneNumber   *string `json:"phone_number"`
	Email         *string `json:"email"`
}

// CreateSupplier handles creating a new supplier
func (h *SupplierHandlers) CreateSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateSupplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	supplier := &models.Supplier{
		Name:          req.Name,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
	}

	if err := h.supplierService.Create(ctx, tenantID, supplier); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, supplier)
}

// GetSupplier handles getting supplier details by ID
func (h *SupplierHandlers) GetSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	supplierID, err := common.ValidateUUID(c.Param("id"), "supplier_id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	supplier, err := h.supplierService.GetByID(ctx, tenantID, supplierID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, supplier)
}

// UpdateSupplierRequest represents the supplier update request payload
type UpdateSupplierRequest struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
	PhoneNumber   *string `json:"phone_number"`
	Email         *string `json:"email"`
}

// UpdateSupplier handles updating supplier details
func (h *SupplierHandlers) UpdateSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	supplierID, err := common.ValidateUUID(c.Param("id"), "supplier_id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	var req UpdateSupplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	supplier, err := h.supplierService.GetByID(ctx, tenantID, supplierID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Address != nil {
		supplier.Address = req.Address
	}
	if req.ContactPerson != nil {
		supplier.ContactPerson = req.ContactPerson
	}
	if req.PhoneNumber != nil {
		supplier.PhoneNumber = req.PhoneNumber
	}
	if req.Email != nil {
		supplier.Email = req.Email
	}

	if err := h.supplierService.Update(ctx, tenantID, supplier); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles deleting a supplier. A supplier referenced by
// products or orders comes back as Conflict.
func (h *SupplierHandlers) DeleteSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	supplierID, err := common.ValidateUUID(c.Param("id"), "supplier_id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.supplierService.Delete(ctx, tenantID, supplierID); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Supplier deleted successfully",
	})
}

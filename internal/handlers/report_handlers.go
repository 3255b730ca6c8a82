package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stocktrack/internal/common"
	"stocktrack/internal/services"
)

// ReportHandlers serves the read-only reporting views
type ReportHandlers struct {
	reportService services.ReportService
}

// NewReportHandlers creates a new report handlers instance
func NewReportHandlers(reportService services.ReportService) *ReportHandlers {
	return &ReportHandlers{reportService: reportService}
}

// LowStock lists products whose available quantity sits under their minimum
func (h *ReportHandlers) LowStock(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	report, err := h.reportService.LowStock(ctx, tenantID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": report,
	})
}

// TodayShipments lists shipments departing today with their order lines
func (h *ReportHandlers) TodayShipments(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	rows, err := h.reportService.TodayShipments(ctx, tenantID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"shipments": rows,
	})
}

// ProductsWithSuppliers lists every product joined with its supplier
func (h *ReportHandlers) ProductsWithSuppliers(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	rows, err := h.reportService.ProductsWithSuppliers(ctx, tenantID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": rows,
	})
}

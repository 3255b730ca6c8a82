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

const presignedDocumentExpiry = 15 * time.Minute

// ShipmentHandlers handles shipment-related HTTP requests, including the
// document attachments stored in object storage.
type ShipmentHandlers struct {
	shipmentService services.ShipmentService
	documentService services.DocumentService
}

// NewShipmentHandlers creates a new shipment handlers instance
func NewShipmentHandlers(shipmentService services.ShipmentService, documentService services.DocumentService) *ShipmentHandlers {
	return &ShipmentHandlers{
		shipmentService: shipmentService,
		documentService: documentService,
	}
}

// ListShipmentsRequest represents query parameters for listing shipments
type ListShipmentsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListShipments handles getting a list of shipments with their linked orders
func (h *ShipmentHandlers) ListShipments(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListShipmentsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	shipments, err := h.shipmentService.List(ctx, tenantID, req.Limit, req.Offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if shipments == nil {
		shipments = []*models.ShipmentWithOrders{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"shipments": shipments,
	})
}

// CreateShipmentRequest represents the shipment creation request payload
type CreateShipmentRequest struct {
	ShipmentDate         string      `json:"shipment_date" validate:"required"`
	EstimatedArrivalDate string      `json:"estimated_arrival_date" validate:"required"`
	OrderIDs             []uuid.UUID `json:"order_ids" validate:"required"`
}

// CreateShipment handles creating a shipment linked to existing orders
func (h *ShipmentHandlers) CreateShipment(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	shipmentDate, err := common.ValidateDate(req.ShipmentDate, "shipment_date")
	if err != nil {
		return common.SendDomainError(c, err)
	}
	estimatedArrival, err := common.ValidateDate(req.EstimatedArrivalDate, "estimated_arrival_date")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	shipment, err := h.shipmentService.Create(ctx, tenantID, shipmentDate, estimatedArrival, req.OrderIDs)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, shipment)
}

// GetShipment handles getting shipment details, including linked orders
func (h *ShipmentHandlers) GetShipment(c echo.Context) error {
	ctx := c.Request().Context()

	shipmentID, err := common.ValidateUUID(c.Param("id"), "shipment_id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	shipment, err := h.shipmentService.GetByID(ctx, tenantID, shipmentID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, shipment)
}

// UploadDocument attaches a multipart file to a shipment
func (h *ShipmentHandlers) UploadDocument(c echo.Context) error {
	ctx := c.Request().Context()

	shipmentID, err := common.ValidateUUID(c.Param("id"), "shipment_id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	// The shipment must exist in this tenant before anything is stored.
	if _, err := h.shipmentService.GetByID(ctx, tenantID, shipmentID); err != nil {
		return common.SendDomainError(c, err)
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "document file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	objectName, err := h.documentService.UploadShipmentDocument(ctx, tenantID, shipmentID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src, fileHeader.Size)
	if err != nil {
		return common.SendServerError(c, "Failed to store document")
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"object_name": objectName,
	})
}

// ListDocuments lists a shipment's stored documents with presigned URLs
func (h *ShipmentHandlers) ListDocuments(c echo.Context) error {
	ctx := c.Request().Context()

	shipmentID, err := common.ValidateUUID(c.Param("id"), "shipment_id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if _, err := h.shipmentService.GetByID(ctx, tenantID, shipmentID); err != nil {
		return common.SendDomainError(c, err)
	}

	objects, err := h.documentService.ListShipmentDocuments(ctx, tenantID, shipmentID)
	if err != nil {
		return common.SendServerError(c, "Failed to list documents")
	}

	documents := make([]map[string]string, 0, len(objects))
	for _, objectName := range objects {
		url, err := h.documentService.GetPresignedURL(ctx, objectName, presignedDocumentExpiry)
		if err != nil {
			return common.SendServerError(c, "Failed to sign document URL")
		}
		documents = append(documents, map[string]string{
			"object_name": objectName,
			"url":         url,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"documents": documents,
	})
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Shipment struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	TenantID             uuid.UUID `json:"tenant_id" db:"tenant_id"`
	ShipmentDate         time.Time `json:"shipment_date" db:"shipment_date"`
	EstimatedArrivalDate time.Time `json:"estimated_arrival_date" db:"estimated_arrival_date"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// ShipmentOrder links a shipment to one of the orders it delivers.
// Composite identity (shipment_id, order_id), no lifecycle of its own.
type ShipmentOrder struct {
	ShipmentID uuid.UUID `json:"shipment_id" db:"shipment_id"`
	OrderID    uuid.UUID `json:"order_id" db:"order_id"`
	TenantID   uuid.UUID `json:"tenant_id" db:"tenant_id"`
}

// ShipmentWithOrders is the read shape returned by the shipments listing.
type ShipmentWithOrders struct {
	Shipment
	OrderIDs []uuid.UUID `json:"order_ids"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TenantID      uuid.UUID `json:"tenant_id" db:"tenant_id"`
	SupplierID    uuid.UUID `json:"supplier_id" db:"supplier_id"`
	OrderDate     time.Time `json:"order_date" db:"order_date"`
	AutoGenerated bool      `json:"auto_generated" db:"auto_generated"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// OrderWithItems is the read shape returned by the orders listing: the
// order row plus supplier name and its expanded items.
type OrderWithItems struct {
	Order
	SupplierName string       `json:"supplier_name"`
	Items        []*OrderItem `json:"items"`
}

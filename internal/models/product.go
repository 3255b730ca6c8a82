package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID                uuid.UUID `json:"id" db:"id"`
	TenantID          uuid.UUID `json:"tenant_id" db:"tenant_id"`
	SupplierID        uuid.UUID `json:"supplier_id" db:"supplier_id"`
	Name              string    `json:"name" db:"name"`
	Description       *string   `json:"description" db:"description"`
	UnitPrice         float64   `json:"unit_price" db:"unit_price"`
	QuantityAvailable int       `json:"quantity_available" db:"quantity_available"`
	MinimumQuantity   int       `json:"minimum_quantity" db:"minimum_quantity"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// BelowMinimum reports whether available stock has fallen under the
// configured reorder threshold.
func (p *Product) BelowMinimum() bool {
	return p.QuantityAvailable < p.MinimumQuantity
}

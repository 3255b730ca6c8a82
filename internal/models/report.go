package models

import (
	"time"

	"github.com/google/uuid"
)

// LowStockProduct is a row of the low_stock_products view: products whose
// available quantity has dropped below their minimum.
type LowStockProduct struct {
	ProductID         uuid.UUID `json:"product_id" db:"product_id"`
	Name              string    `json:"name" db:"name"`
	QuantityAvailable int       `json:"quantity_available" db:"quantity_available"`
	MinimumQuantity   int       `json:"minimum_quantity" db:"minimum_quantity"`
	SupplierID        uuid.UUID `json:"supplier_id" db:"supplier_id"`
}

// TodayShipmentRow is a row of the today_shipments view: shipment, order and
// product rows joined for shipments dated today.
type TodayShipmentRow struct {
	ShipmentID      uuid.UUID `json:"shipment_id" db:"shipment_id"`
	ShipmentDate    time.Time `json:"shipment_date" db:"shipment_date"`
	OrderID         uuid.UUID `json:"order_id" db:"order_id"`
	ProductID       uuid.UUID `json:"product_id" db:"product_id"`
	ProductQuantity int       `json:"product_quantity" db:"product_quantity"`
}

// ProductWithSupplier is a product row joined with its supplier's name.
type ProductWithSupplier struct {
	Product
	SupplierName string `json:"supplier_name" db:"supplier_name"`
}

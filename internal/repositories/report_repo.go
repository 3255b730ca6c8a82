package repositories

import (
	"context"

	"github.com/google/uuid"

	"stocktrack/internal/models"
)

// ReportRepository reads the derived projections. low_stock_products and
// today_shipments are store views; all three queries are tenant-scoped and
// mutate nothing.
type ReportRepository interface {
	LowStock(ctx context.Context, tenantID uuid.UUID) ([]*models.LowStockProduct, error)
	TodayShipments(ctx context.Context, tenantID uuid.UUID) ([]*models.TodayShipmentRow, error)
	ProductsWithSuppliers(ctx context.Context, tenantID uuid.UUID) ([]*models.ProductWithSupplier, error)
}

type reportRepo struct {
	db Database
}

func NewReportRepository(db Database) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) LowStock(ctx context.Context, tenantID uuid.UUID) ([]*models.LowStockProduct, error) {
	query := `
		SELECT product_id, name, quantity_available, minimum_quantity, supplier_id
		FROM low_stock_products
		WHERE tenant_id = $1
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var products []*models.LowStockProduct
	for rows.Next() {
		p := &models.LowStockProduct{}
		if err := rows.Scan(&p.ProductID, &p.Name, &p.QuantityAvailable, &p.MinimumQuantity, &p.SupplierID); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *reportRepo) TodayShipments(ctx context.Context, tenantID uuid.UUID) ([]*models.TodayShipmentRow, error) {
	query := `
		SELECT shipment_id, shipment_date, order_id, product_id, product_quantity
		FROM today_shipments
		WHERE tenant_id = $1
		ORDER BY shipment_id, order_id
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var shipments []*models.TodayShipmentRow
	for rows.Next() {
		s := &models.TodayShipmentRow{}
		if err := rows.Scan(&s.ShipmentID, &s.ShipmentDate, &s.OrderID, &s.ProductID, &s.ProductQuantity); err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, rows.Err()
}

func (r *reportRepo) ProductsWithSuppliers(ctx context.Context, tenantID uuid.UUID) ([]*models.ProductWithSupplier, error) {
	query := `
		SELECT p.id, p.tenant_id, p.supplier_id, p.name, p.description, p.unit_price, p.quantity_available, p.minimum_quantity, p.created_at, p.updated_at, s.name AS supplier_name
		FROM products p
		JOIN suppliers s ON s.tenant_id = p.tenant_id AND s.id = p.supplier_id
		WHERE p.tenant_id = $1
		ORDER BY p.name
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var products []*models.ProductWithSupplier
	for rows.Next() {
		p := &models.ProductWithSupplier{}
		if err := rows.Scan(&p.ID, &p.TenantID, &p.SupplierID, &p.Name, &p.Description, &p.UnitPrice, &p.QuantityAvailable, &p.MinimumQuantity, &p.CreatedAt, &p.UpdatedAt, &p.SupplierName); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

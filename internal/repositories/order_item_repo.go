package repositories

import (
	"context"

	"github.com/google/uuid"

	"stocktrack/internal/models"
)

type OrderItemRepository interface {
	ListByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]*models.OrderItem, error)
}

type orderItemRepo struct {
	db Database
}

func NewOrderItemRepository(db Database) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) ListByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]*models.OrderItem, error) {
	query := `
		SELECT i.id, i.tenant_id, i.order_id, i.product_id, p.name, i.quantity, i.created_at, i.updated_at
		FROM order_items i
		JOIN products p ON p.tenant_id = i.tenant_id AND p.id = i.product_id
		WHERE i.tenant_id = $1 AND i.order_id = $2
		ORDER BY i.created_at
	`
	rows, err := r.db.Query(ctx, query, tenantID, orderID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.TenantID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

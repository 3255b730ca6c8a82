package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stocktrack/internal/models"
)

type OrderRepository interface {
	// CreateWithItems inserts the order and all of its items in one transaction.
	CreateWithItems(ctx context.Context, order *models.Order, items []*models.OrderItem) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Order, error)
	ListWithItems(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.OrderWithItems, error)
	GetReplenishment(ctx context.Context, tenantID, supplierID uuid.UUID, orderDate time.Time) (*models.Order, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepository(db Database) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateWithItems(ctx context.Context, order *models.Order, items []*models.OrderItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapStoreError(err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, tenant_id, supplier_id, order_date, auto_generated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, orderQuery, order.ID, order.TenantID, order.SupplierID, order.OrderDate, order.AutoGenerated); err != nil {
		return mapStoreError(err)
	}

	itemQuery := `
		INSERT INTO order_items (id, tenant_id, order_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery, item.ID, item.TenantID, item.OrderID, item.ProductID, item.Quantity); err != nil {
			return mapStoreError(err)
		}
	}

	return mapStoreError(tx.Commit(ctx))
}

func (r *orderRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, tenant_id, supplier_id, order_date, auto_generated, created_at, updated_at
		FROM orders
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&order.ID, &order.TenantID, &order.SupplierID, &order.OrderDate, &order.AutoGenerated, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("order: %w", mapStoreError(err))
	}
	return order, nil
}

func (r *orderRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT id, tenant_id, supplier_id, order_date, auto_generated, created_at, updated_at
		FROM orders
		WHERE tenant_id = $1
		ORDER BY order_date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.TenantID, &order.SupplierID, &order.OrderDate, &order.AutoGenerated, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// ListWithItems returns orders with supplier name and expanded items in a
// single round trip per collection.
func (r *orderRepo) ListWithItems(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.OrderWithItems, error) {
	query := `
		SELECT o.id, o.tenant_id, o.supplier_id, o.order_date, o.auto_generated, o.created_at, o.updated_at, s.name
		FROM orders o
		JOIN suppliers s ON s.tenant_id = o.tenant_id AND s.id = o.supplier_id
		WHERE o.tenant_id = $1
		ORDER BY o.order_date DESC, o.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var orders []*models.OrderWithItems
	byID := make(map[uuid.UUID]*models.OrderWithItems)
	for rows.Next() {
		order := &models.OrderWithItems{}
		if err := rows.Scan(&order.ID, &order.TenantID, &order.SupplierID, &order.OrderDate, &order.AutoGenerated, &order.CreatedAt, &order.UpdatedAt, &order.SupplierName); err != nil {
			return nil, err
		}
		order.Items = []*models.OrderItem{}
		orders = append(orders, order)
		byID[order.ID] = order
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	itemQuery := `
		SELECT i.id, i.tenant_id, i.order_id, i.product_id, p.name, i.quantity, i.created_at, i.updated_at
		FROM order_items i
		JOIN products p ON p.tenant_id = i.tenant_id AND p.id = i.product_id
		WHERE i.tenant_id = $1 AND i.order_id = ANY($2)
		ORDER BY i.created_at
	`
	itemRows, err := r.db.Query(ctx, itemQuery, tenantID, ids)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item := &models.OrderItem{}
		if err := itemRows.Scan(&item.ID, &item.TenantID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return orders, itemRows.Err()
}

// GetReplenishment fetches the auto-generated order for a supplier on a
// given day, if one exists.
func (r *orderRepo) GetReplenishment(ctx context.Context, tenantID, supplierID uuid.UUID, orderDate time.Time) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, tenant_id, supplier_id, order_date, auto_generated, created_at, updated_at
		FROM orders
		WHERE tenant_id = $1 AND supplier_id = $2 AND order_date = $3 AND auto_generated
	`
	err := r.db.QueryRow(ctx, query, tenantID, supplierID, orderDate).Scan(&order.ID, &order.TenantID, &order.SupplierID, &order.OrderDate, &order.AutoGenerated, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("order: %w", mapStoreError(err))
	}
	return order, nil
}

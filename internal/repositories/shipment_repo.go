package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stocktrack/internal/common"
	"stocktrack/internal/models"
)

type ShipmentRepository interface {
	// Create inserts the shipment and its order links in one transaction.
	Create(ctx context.Context, shipment *models.Shipment, orderIDs []uuid.UUID) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ShipmentWithOrders, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ShipmentWithOrders, error)
}

type shipmentRepo struct {
	db Database
}

func NewShipmentRepository(db Database) ShipmentRepository {
	return &shipmentRepo{db: db}
}

func (r *shipmentRepo) Create(ctx context.Context, shipment *models.Shipment, orderIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapStoreError(err)
	}
	defer tx.Rollback(ctx)

	shipmentQuery := `
		INSERT INTO shipments (id, tenant_id, shipment_date, estimated_arrival_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, shipmentQuery, shipment.ID, shipment.TenantID, shipment.ShipmentDate, shipment.EstimatedArrivalDate); err != nil {
		return mapStoreError(err)
	}

	linkQuery := `
		INSERT INTO shipment_orders (shipment_id, order_id, tenant_id)
		SELECT $1, o.id, o.tenant_id
		FROM orders o
		WHERE o.tenant_id = $2 AND o.id = $3
	`
	for _, orderID := range orderIDs {
		tag, err := tx.Exec(ctx, linkQuery, shipment.ID, shipment.TenantID, orderID)
		if err != nil {
			return mapStoreError(err)
		}
		// The INSERT ... SELECT matches zero rows when the order belongs
		// to another tenant or does not exist; the whole create fails.
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("order %s: %w", orderID, common.ErrNotFound)
		}
	}

	return mapStoreError(tx.Commit(ctx))
}

func (r *shipmentRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ShipmentWithOrders, error) {
	shipment := &models.ShipmentWithOrders{}
	query := `
		SELECT id, tenant_id, shipment_date, estimated_arrival_date, created_at, updated_at
		FROM shipments
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&shipment.ID, &shipment.TenantID, &shipment.ShipmentDate, &shipment.EstimatedArrivalDate, &shipment.CreatedAt, &shipment.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("shipment: %w", mapStoreError(err))
	}

	shipment.OrderIDs = []uuid.UUID{}
	linkQuery := `
		SELECT order_id FROM shipment_orders
		WHERE tenant_id = $1 AND shipment_id = $2
		ORDER BY order_id
	`
	rows, err := r.db.Query(ctx, linkQuery, tenantID, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var orderID uuid.UUID
		if err := rows.Scan(&orderID); err != nil {
			return nil, err
		}
		shipment.OrderIDs = append(shipment.OrderIDs, orderID)
	}
	return shipment, rows.Err()
}

func (r *shipmentRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ShipmentWithOrders, error) {
	query := `
		SELECT id, tenant_id, shipment_date, estimated_arrival_date, created_at, updated_at
		FROM shipments
		WHERE tenant_id = $1
		ORDER BY shipment_date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var shipments []*models.ShipmentWithOrders
	byID := make(map[uuid.UUID]*models.ShipmentWithOrders)
	for rows.Next() {
		shipment := &models.ShipmentWithOrders{}
		if err := rows.Scan(&shipment.ID, &shipment.TenantID, &shipment.ShipmentDate, &shipment.EstimatedArrivalDate, &shipment.CreatedAt, &shipment.UpdatedAt); err != nil {
			return nil, err
		}
		shipment.OrderIDs = []uuid.UUID{}
		shipments = append(shipments, shipment)
		byID[shipment.ID] = shipment
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(shipments) == 0 {
		return shipments, nil
	}

	ids := make([]uuid.UUID, 0, len(shipments))
	for _, s := range shipments {
		ids = append(ids, s.ID)
	}
	linkQuery := `
		SELECT shipment_id, order_id FROM shipment_orders
		WHERE tenant_id = $1 AND shipment_id = ANY($2)
		ORDER BY order_id
	`
	linkRows, err := r.db.Query(ctx, linkQuery, tenantID, ids)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var shipmentID, orderID uuid.UUID
		if err := linkRows.Scan(&shipmentID, &orderID); err != nil {
			return nil, err
		}
		if shipment, ok := byID[shipmentID]; ok {
			shipment.OrderIDs = append(shipment.OrderIDs, orderID)
		}
	}
	return shipments, linkRows.Err()
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"stocktrack/internal/caching"
	"stocktrack/internal/common"
	"stocktrack/internal/repositories"
)

// ReorderResult reports what a quantity update did.
type ReorderResult struct {
	ProductID         uuid.UUID `json:"product_id"`
	NewQuantity       int       `json:"new_quantity"`
	MinimumQuantity   int       `json:"minimum_quantity"`
	ReorderTriggered  bool      `json:"reorder_triggered"`
	OrderID           uuid.UUID `json:"order_id,omitempty"`
	OrderCreated      bool      `json:"order_created"`
	RequestedQuantity int       `json:"requested_quantity,omitempty"`
}

// ReorderService is the reorder engine: it owns the quantity write and the
// replenishment decision, and runs both in one store transaction.
type ReorderService interface {
	UpdateQuantity(ctx context.Context, tenantID, productID uuid.UUID, newQuantity int) (*ReorderResult, error)
}

type reorderService struct {
	db                repositories.Database
	cacheService      caching.CacheService
	restockMultiplier int
	logger            *zap.Logger
}

func NewReorderService(db repositories.Database, cacheService caching.CacheService, restockMultiplier int, logger *zap.Logger) ReorderService {
	if restockMultiplier < 1 {
		restockMultiplier = 2
	}
	return &reorderService{
		db:                db,
		cacheService:      cacheService,
		restockMultiplier: restockMultiplier,
		logger:            logger,
	}
}

// UpdateQuantity sets the product's available quantity and, when the new
// quantity is below the product's minimum, ensures exactly one auto-generated
// replenishment order exists for (tenant, supplier, today). The product row
// is locked for the duration of the transaction, so concurrent updates to the
// same product serialize; the order insert is an idempotent upsert against
// the partial unique index on (tenant_id, supplier_id, order_date).
func (s *reorderService) UpdateQuantity(ctx context.Context, tenantID, productID uuid.UUID, newQuantity int) (*ReorderResult, error) {
	if newQuantity < 0 {
		return nil, fmt.Errorf("%w: new_quantity must not be negative", common.ErrValidation)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, mapTxError(err)
	}
	defer tx.Rollback(ctx)

	var supplierID uuid.UUID
	var minimum int
	lockQuery := `
		SELECT supplier_id, minimum_quantity
		FROM products
		WHERE tenant_id = $1 AND id = $2
		FOR UPDATE
	`
	if err := tx.QueryRow(ctx, lockQuery, tenantID, productID).Scan(&supplierID, &minimum); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product: %w", common.ErrNotFound)
		}
		return nil, mapTxError(err)
	}

	updateQuery := `
		UPDATE products
		SET quantity_available = $3, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`
	if _, err := tx.Exec(ctx, updateQuery, tenantID, productID, newQuantity); err != nil {
		return nil, mapTxError(err)
	}

	result := &ReorderResult{
		ProductID:       productID,
		NewQuantity:     newQuantity,
		MinimumQuantity: minimum,
	}

	if newQuantity < minimum {
		result.ReorderTriggered = true
		result.RequestedQuantity = s.restockMultiplier*minimum - newQuantity

		orderID := uuid.New()
		orderQuery := `
			INSERT INTO orders (id, tenant_id, supplier_id, order_date, auto_generated, created_at, updated_at)
			VALUES ($1, $2, $3, CURRENT_DATE, TRUE, NOW(), NOW())
			ON CONFLICT (tenant_id, supplier_id, order_date) WHERE auto_generated DO NOTHING
		`
		tag, err := tx.Exec(ctx, orderQuery, orderID, tenantID, supplierID)
		if err != nil {
			return nil, mapTxError(err)
		}
		result.OrderCreated = tag.RowsAffected() == 1

		if !result.OrderCreated {
			existingQuery := `
				SELECT id FROM orders
				WHERE tenant_id = $1 AND supplier_id = $2 AND order_date = CURRENT_DATE AND auto_generated
			`
			if err := tx.QueryRow(ctx, existingQuery, tenantID, supplierID).Scan(&orderID); err != nil {
				return nil, mapTxError(err)
			}
		}
		result.OrderID = orderID

		// Re-triggering the same product on the same day raises the
		// existing line to the larger deficit instead of duplicating it.
		itemQuery := `
			INSERT INTO order_items (id, tenant_id, order_id, product_id, quantity, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			ON CONFLICT (order_id, product_id)
			DO UPDATE SET quantity = GREATEST(order_items.quantity, EXCLUDED.quantity), updated_at = NOW()
		`
		if _, err := tx.Exec(ctx, itemQuery, uuid.New(), tenantID, orderID, productID, result.RequestedQuantity); err != nil {
			return nil, mapTxError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapTxError(err)
	}

	if result.ReorderTriggered {
		s.logger.Info("reorder triggered",
			zap.String("tenant_id", tenantID.String()),
			zap.String("product_id", productID.String()),
			zap.String("order_id", result.OrderID.String()),
			zap.Bool("order_created", result.OrderCreated),
			zap.Int("new_quantity", newQuantity),
			zap.Int("minimum_quantity", minimum),
			zap.Int("requested_quantity", result.RequestedQuantity))
	}

	// Quantity changed; stale copies must not outlive the commit.
	if err := s.cacheService.DeleteProduct(ctx, tenantID, productID); err != nil {
		s.logger.Warn("failed to invalidate product cache", zap.String("product_id", productID.String()), zap.Error(err))
	}
	if err := s.cacheService.DeleteLowStockReport(ctx, tenantID); err != nil {
		s.logger.Warn("failed to invalidate low-stock cache", zap.String("tenant_id", tenantID.String()), zap.Error(err))
	}

	return result, nil
}

// mapTxError converts driver failures inside the engine transaction into the
// domain taxonomy. Serialization failures and unique violations mean two
// writers raced; callers see Conflict and may retry.
func mapTxError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "40001", "40P01":
			return fmt.Errorf("%w: concurrent update detected", common.ErrConflict)
		}
	}
	return err
}

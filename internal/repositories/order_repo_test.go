package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"stocktrack/internal/common"
	"stocktrack/internal/models"
)

type OrderRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     OrderRepository
	tenantID uuid.UUID
	ctx      context.Context
}

func (suite *OrderRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewOrderRepository(mock)
	suite.tenantID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *OrderRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func (suite *OrderRepoTestSuite) newOrderWithItems(itemCount int) (*models.Order, []*models.OrderItem) {
	order := &models.Order{
		ID:         uuid.New(),
		TenantID:   suite.tenantID,
		SupplierID: uuid.New(),
		OrderDate:  time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	items := make([]*models.OrderItem, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		items = append(items, &models.OrderItem{
			ID:        uuid.New(),
			TenantID:  suite.tenantID,
			OrderID:   order.ID,
			ProductID: uuid.New(),
			Quantity:  i + 1,
		})
	}
	return order, items
}

func (suite *OrderRepoTestSuite) TestCreateWithItems_CommitsOrderAndItems() {
	order, items := suite.newOrderWithItems(2)

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("INSERT INTO orders").
		WithArgs(order.ID, order.TenantID, order.SupplierID, order.OrderDate, order.AutoGenerated).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, item := range items {
		suite.mock.ExpectExec("INSERT INTO order_items").
			WithArgs(item.ID, item.TenantID, item.OrderID, item.ProductID, item.Quantity).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	err := suite.repo.CreateWithItems(suite.ctx, order, items)
	assert.NoError(suite.T(), err)
}

func (suite *OrderRepoTestSuite) TestCreateWithItems_ItemFailureRollsBackOrder() {
	order, items := suite.newOrderWithItems(2)

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("INSERT INTO orders").
		WithArgs(order.ID, order.TenantID, order.SupplierID, order.OrderDate, order.AutoGenerated).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec("INSERT INTO order_items").
		WithArgs(items[0].ID, items[0].TenantID, items[0].OrderID, items[0].ProductID, items[0].Quantity).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec("INSERT INTO order_items").
		WithArgs(items[1].ID, items[1].TenantID, items[1].OrderID, items[1].ProductID, items[1].Quantity).
		WillReturnError(errors.New("insert failed"))
	// No commit: the deferred rollback discards the order and the first item.
	suite.mock.ExpectRollback()

	err := suite.repo.CreateWithItems(suite.ctx, order, items)
	assert.Error(suite.T(), err)
}

func (suite *OrderRepoTestSuite) TestCreateWithItems_BeginFailure() {
	order, items := suite.newOrderWithItems(1)

	suite.mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	err := suite.repo.CreateWithItems(suite.ctx, order, items)
	assert.Error(suite.T(), err)
}

func (suite *OrderRepoTestSuite) TestGetReplenishment_NoneIsNotFound() {
	supplierID := uuid.New()
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery("SELECT id, tenant_id, supplier_id").
		WithArgs(suite.tenantID, supplierID, today).
		WillReturnError(pgx.ErrNoRows)

	order, err := suite.repo.GetReplenishment(suite.ctx, suite.tenantID, supplierID, today)
	assert.Nil(suite.T(), order)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

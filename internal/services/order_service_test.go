package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"stocktrack/internal/common"
	"stocktrack/internal/models"
)

type OrderServiceTestSuite struct {
	suite.Suite
	orderRepo     *MockOrderRepository
	orderItemRepo *MockOrderItemRepository
	productRepo   *MockProductRepository
	supplierRepo  *MockSupplierRepository
	service       OrderService
	tenantID      uuid.UUID
	supplierID    uuid.UUID
	ctx           context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.orderRepo = &MockOrderRepository{}
	suite.orderItemRepo = &MockOrderItemRepository{}
	suite.productRepo = &MockProductRepository{}
	suite.supplierRepo = &MockSupplierRepository{}
	suite.service = NewOrderService(suite.orderRepo, suite.orderItemRepo, suite.productRepo, suite.supplierRepo)
	suite.tenantID = uuid.New()
	suite.supplierID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *OrderServiceTestSuite) TearDownTest() {
	suite.orderRepo.AssertExpectations(suite.T())
	suite.orderItemRepo.AssertExpectations(suite.T())
	suite.productRepo.AssertExpectations(suite.T())
	suite.supplierRepo.AssertExpectations(suite.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) supplier() *models.Supplier {
	return &models.Supplier{ID: suite.supplierID, TenantID: suite.tenantID, Name: "Acme"}
}

func (suite *OrderServiceTestSuite) TestCreate_Success() {
	productID := uuid.New()
	orderDate := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	lines := []OrderLine{{ProductID: productID, Quantity: 5}}

	suite.supplierRepo.On("GetByID", suite.ctx, suite.tenantID, suite.supplierID).Return(suite.supplier(), nil)
	suite.productRepo.On("GetByID", suite.ctx, suite.tenantID, productID).
		Return(&models.Product{ID: productID, TenantID: suite.tenantID, SupplierID: suite.supplierID}, nil)
	suite.orderRepo.On("CreateWithItems", suite.ctx, mock.AnythingOfType("*models.Order"), mock.AnythingOfType("[]*models.OrderItem")).Return(nil).Run(func(args mock.Arguments) {
		order := args.Get(1).(*models.Order)
		assert.Equal(suite.T(), suite.tenantID, order.TenantID)
		assert.Equal(suite.T(), suite.supplierID, order.SupplierID)
		assert.False(suite.T(), order.AutoGenerated)

		items := args.Get(2).([]*models.OrderItem)
		assert.Len(suite.T(), items, 1)
		assert.Equal(suite.T(), order.ID, items[0].OrderID)
		assert.Equal(suite.T(), productID, items[0].ProductID)
		assert.Equal(suite.T(), 5, items[0].Quantity)
	})

	order, err := suite.service.Create(suite.ctx, suite.tenantID, suite.supplierID, orderDate, lines)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), order)
	assert.Equal(suite.T(), orderDate, order.OrderDate)
}

func (suite *OrderServiceTestSuite) TestCreate_StoreFailureReturnsNoOrder() {
	productID := uuid.New()
	lines := []OrderLine{{ProductID: productID, Quantity: 5}}

	suite.supplierRepo.On("GetByID", suite.ctx, suite.tenantID, suite.supplierID).Return(suite.supplier(), nil)
	suite.productRepo.On("GetByID", suite.ctx, suite.tenantID, productID).
		Return(&models.Product{ID: productID, TenantID: suite.tenantID, SupplierID: suite.supplierID}, nil)
	suite.orderRepo.On("CreateWithItems", suite.ctx, mock.AnythingOfType("*models.Order"), mock.AnythingOfType("[]*models.OrderItem")).
		Return(errors.New("insert failed"))

	order, err := suite.service.Create(suite.ctx, suite.tenantID, suite.supplierID, time.Now(), lines)
	assert.Nil(suite.T(), order)
	assert.Error(suite.T(), err)
}

func (suite *OrderServiceTestSuite) TestCreate_EmptyLinesRejected() {
	order, err := suite.service.Create(suite.ctx, suite.tenantID, suite.supplierID, time.Now(), nil)
	assert.Nil(suite.T(), order)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestCreate_ZeroQuantityRejected() {
	suite.supplierRepo.On("GetByID", suite.ctx, suite.tenantID, suite.supplierID).Return(suite.supplier(), nil)

	lines := []OrderLine{{ProductID: uuid.New(), Quantity: 0}}
	order, err := suite.service.Create(suite.ctx, suite.tenantID, suite.supplierID, time.Now(), lines)
	assert.Nil(suite.T(), order)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestCreate_ProductFromOtherSupplierRejected() {
	productID := uuid.New()
	otherSupplier := uuid.New()

	suite.supplierRepo.On("GetByID", suite.ctx, suite.tenantID, suite.supplierID).Return(suite.supplier(), nil)
	suite.productRepo.On("GetByID", suite.ctx, suite.tenantID, productID).
		Return(&models.Product{ID: productID, TenantID: suite.tenantID, SupplierID: otherSupplier}, nil)

	lines := []OrderLine{{ProductID: productID, Quantity: 2}}
	order, err := suite.service.Create(suite.ctx, suite.tenantID, suite.supplierID, time.Now(), lines)
	assert.Nil(suite.T(), order)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestGetByID_AssemblesItemsAndSupplierName() {
	orderID := uuid.New()
	order := &models.Order{ID: orderID, TenantID: suite.tenantID, SupplierID: suite.supplierID}
	items := []*models.OrderItem{{ID: uuid.New(), OrderID: orderID, Quantity: 3}}

	suite.orderRepo.On("GetByID", suite.ctx, suite.tenantID, orderID).Return(order, nil)
	suite.supplierRepo.On("GetByID", suite.ctx, suite.tenantID, suite.supplierID).Return(suite.supplier(), nil)
	suite.orderItemRepo.On("ListByOrder", suite.ctx, suite.tenantID, orderID).Return(items, nil)

	got, err := suite.service.GetByID(suite.ctx, suite.tenantID, orderID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Acme", got.SupplierName)
	assert.Len(suite.T(), got.Items, 1)
}

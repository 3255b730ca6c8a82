package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"stocktrack/internal/common"
	"stocktrack/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	productRepo  *MockProductRepository
	supplierRepo *MockSupplierRepository
	cache        *MockCacheService
	service      ProductService
	tenantID     uuid.UUID
	supplierID   uuid.UUID
	ctx          context.Context
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.productRepo = &MockProductRepository{}
	suite.supplierRepo = &MockSupplierRepository{}
	suite.cache = &MockCacheService{}
	suite.productRepo.Test(suite.T())
	suite.supplierRepo.Test(suite.T())
	suite.cache.Test(suite.T())
	suite.service = NewProductService(suite.productRepo, suite.supplierRepo, suite.cache, zap.NewNop())
	suite.tenantID = uuid.New()
	suite.supplierID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *ProductServiceTestSuite) TearDownTest() {
	suite.productRepo.AssertExpectations(suite.T())
	suite.supplierRepo.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func (suite *ProductServiceTestSuite) validProduct() *models.Product {
	return &models.Product{
		SupplierID:        suite.supplierID,
		Name:              "Wheat Flour 25kg",
		UnitPrice:         12.50,
		QuantityAvailable: 100,
		MinimumQuantity:   20,
	}
}

func (suite *ProductServiceTestSuite) TestCreate_Success() {
	supplier := &models.Supplier{ID: suite.supplierID, TenantID: suite.tenantID, Name: "Acme"}
	suite.supplierRepo.On("GetByID", suite.ctx, suite.tenantID, suite.supplierID).Return(supplier, nil)
	suite.productRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Product")).Return(nil).Run(func(args mock.Arguments) {
		created := args.Get(1).(*models.Product)
		assert.Equal(suite.T(), suite.tenantID, created.TenantID)
		assert.NotEqual(suite.T(), uuid.Nil, created.ID)
	})

	err := suite.service.Create(suite.ctx, suite.tenantID, suite.validProduct())
	assert.NoError(suite.T(), err)
}

func (suite *ProductServiceTestSuite) TestCreate_UnknownSupplierRejected() {
	suite.supplierRepo.On("GetByID", suite.ctx, suite.tenantID, suite.supplierID).
		Return(nil, fmt.Errorf("supplier: %w", common.ErrNotFound))

	err := suite.service.Create(suite.ctx, suite.tenantID, suite.validProduct())
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestCreate_NegativeQuantityRejected() {
	product := suite.validProduct()
	product.QuantityAvailable = -1

	err := suite.service.Create(suite.ctx, suite.tenantID, product)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestCreate_NegativePriceRejected() {
	product := suite.validProduct()
	product.UnitPrice = -0.01

	err := suite.service.Create(suite.ctx, suite.tenantID, product)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestGetByID_CacheHitSkipsStore() {
	productID := uuid.New()
	cached := &models.Product{ID: productID, TenantID: suite.tenantID, Name: "Cached"}

	suite.cache.On("GetProduct", suite.ctx, suite.tenantID, productID).Return(cached, nil)

	product, err := suite.service.GetByID(suite.ctx, suite.tenantID, productID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, product)
	suite.productRepo.AssertNotCalled(suite.T(), "GetByID", suite.ctx, suite.tenantID, productID)
}

func (suite *ProductServiceTestSuite) TestGetByID_CacheMissReadsStoreAndFills() {
	productID := uuid.New()
	stored := &models.Product{ID: productID, TenantID: suite.tenantID, Name: "Stored"}

	suite.cache.On("GetProduct", suite.ctx, suite.tenantID, productID).Return(nil, nil)
	suite.productRepo.On("GetByID", suite.ctx, suite.tenantID, productID).Return(stored, nil)
	suite.cache.On("SetProduct", suite.ctx, suite.tenantID, stored, productCacheTTL).Return(nil)

	product, err := suite.service.GetByID(suite.ctx, suite.tenantID, productID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored, product)
}

func (suite *ProductServiceTestSuite) TestDelete_Success() {
	productID := uuid.New()
	existing := &models.Product{ID: productID, TenantID: suite.tenantID, Name: "Old"}

	suite.productRepo.On("GetByID", suite.ctx, suite.tenantID, productID).Return(existing, nil)
	suite.productRepo.On("HasOrderReferences", suite.ctx, suite.tenantID, productID).Return(false, nil)
	suite.productRepo.On("Delete", suite.ctx, suite.tenantID, productID).Return(nil)
	suite.cache.On("DeleteProduct", suite.ctx, suite.tenantID, productID).Return(nil)
	suite.cache.On("DeleteLowStockReport", suite.ctx, suite.tenantID).Return(nil)

	err := suite.service.Delete(suite.ctx, suite.tenantID, productID)
	assert.NoError(suite.T(), err)
}

func (suite *ProductServiceTestSuite) TestDelete_ReferencedProductIsConflict() {
	productID := uuid.New()
	existing := &models.Product{ID: productID, TenantID: suite.tenantID, Name: "Ordered"}

	suite.productRepo.On("GetByID", suite.ctx, suite.tenantID, productID).Return(existing, nil)
	suite.productRepo.On("HasOrderReferences", suite.ctx, suite.tenantID, productID).Return(true, nil)

	err := suite.service.Delete(suite.ctx, suite.tenantID, productID)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
	suite.productRepo.AssertNotCalled(suite.T(), "Delete", suite.ctx, suite.tenantID, productID)
}

func (suite *ProductServiceTestSuite) TestDelete_MissingProductIsNotFound() {
	productID := uuid.New()
	suite.productRepo.On("GetByID", suite.ctx, suite.tenantID, productID).
		Return(nil, fmt.Errorf("product: %w", common.ErrNotFound))

	err := suite.service.Delete(suite.ctx, suite.tenantID, productID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

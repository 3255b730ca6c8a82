package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"stocktrack/internal/common"
	"stocktrack/internal/models"
)

type SupplierServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSupplierRepository
	service  SupplierService
	tenantID uuid.UUID
	ctx      context.Context
}

func (suite *SupplierServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockSupplierRepository{}
	suite.mockRepo.Test(suite.T())
	suite.service = NewSupplierService(suite.mockRepo)
	suite.tenantID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *SupplierServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestSupplierServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SupplierServiceTestSuite))
}

func (suite *SupplierServiceTestSuite) TestCreate_Success() {
	supplier := &models.Supplier{Name: "Acme Seeds"}

	suite.mockRepo.On("GetByName", suite.ctx, suite.tenantID, "Acme Seeds").
		Return(nil, fmt.Errorf("supplier: %w", common.ErrNotFound))
	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Supplier")).Return(nil).Run(func(args mock.Arguments) {
		created := args.Get(1).(*models.Supplier)
		assert.Equal(suite.T(), suite.tenantID, created.TenantID)
		assert.NotEqual(suite.T(), uuid.Nil, created.ID)
	})

	err := suite.service.Create(suite.ctx, suite.tenantID, supplier)
	assert.NoError(suite.T(), err)
}

func (suite *SupplierServiceTestSuite) TestCreate_EmptyNameRejected() {
	err := suite.service.Create(suite.ctx, suite.tenantID, &models.Supplier{Name: "  "})
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *SupplierServiceTestSuite) TestCreate_DuplicateNameIsConflict() {
	existing := &models.Supplier{ID: uuid.New(), TenantID: suite.tenantID, Name: "Acme Seeds"}
	suite.mockRepo.On("GetByName", suite.ctx, suite.tenantID, "Acme Seeds").Return(existing, nil)

	err := suite.service.Create(suite.ctx, suite.tenantID, &models.Supplier{Name: "Acme Seeds"})
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
}

func (suite *SupplierServiceTestSuite) TestDelete_Success() {
	supplierID := uuid.New()
	existing := &models.Supplier{ID: supplierID, TenantID: suite.tenantID, Name: "Acme Seeds"}

	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, supplierID).Return(existing, nil)
	suite.mockRepo.On("HasReferences", suite.ctx, suite.tenantID, supplierID).Return(false, nil)
	suite.mockRepo.On("Delete", suite.ctx, suite.tenantID, supplierID).Return(nil)

	err := suite.service.Delete(suite.ctx, suite.tenantID, supplierID)
	assert.NoError(suite.T(), err)
}

func (suite *SupplierServiceTestSuite) TestDelete_ReferencedSupplierIsConflict() {
	supplierID := uuid.New()
	existing := &models.Supplier{ID: supplierID, TenantID: suite.tenantID, Name: "Acme Seeds"}

	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, supplierID).Return(existing, nil)
	suite.mockRepo.On("HasReferences", suite.ctx, suite.tenantID, supplierID).Return(true, nil)

	err := suite.service.Delete(suite.ctx, suite.tenantID, supplierID)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "Delete", suite.ctx, suite.tenantID, supplierID)
}

func (suite *SupplierServiceTestSuite) TestDelete_MissingSupplierIsNotFound() {
	supplierID := uuid.New()
	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, supplierID).
		Return(nil, fmt.Errorf("supplier: %w", common.ErrNotFound))

	err := suite.service.Delete(suite.ctx, suite.tenantID, supplierID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *SupplierServiceTestSuite) TestDelete_ReferenceCheckError() {
	supplierID := uuid.New()
	existing := &models.Supplier{ID: supplierID, TenantID: suite.tenantID, Name: "Acme Seeds"}

	suite.mockRepo.On("GetByID", suite.ctx, suite.tenantID, supplierID).Return(existing, nil)
	suite.mockRepo.On("HasReferences", suite.ctx, suite.tenantID, supplierID).Return(false, errors.New("query timeout"))

	err := suite.service.Delete(suite.ctx, suite.tenantID, supplierID)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "query timeout")
}

func (suite *SupplierServiceTestSuite) TestList_AppliesPaginationDefaults() {
	suite.mockRepo.On("List", suite.ctx, suite.tenantID, 50, 0).Return([]*models.Supplier{}, nil)

	suppliers, err := suite.service.List(suite.ctx, suite.tenantID, 0, -3)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), suppliers)
}

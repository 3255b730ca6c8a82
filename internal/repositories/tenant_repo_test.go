package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"stocktrack/internal/common"
	"stocktrack/internal/models"
)

type TenantRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo TenantRepository
	ctx  context.Context
}

func (suite *TenantRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewTenantRepository(mock)
	suite.ctx = context.Background()
}

func (suite *TenantRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestTenantRepoTestSuite(t *testing.T) {
	suite.Run(t, new(TenantRepoTestSuite))
}

func (suite *TenantRepoTestSuite) newTenantWithOwner() (*models.Tenant, *models.User) {
	tenant := &models.Tenant{
		ID:     uuid.New(),
		Name:   "Acme Farms",
		Status: "active",
	}
	owner := &models.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Email:        "owner@acme.test",
		PasswordHash: "hashed",
		FirstName:    "Ada",
		LastName:     "Okafor",
		Status:       "active",
	}
	return tenant, owner
}

func (suite *TenantRepoTestSuite) TestCreateWithOwner_CommitsBothRows() {
	tenant, owner := suite.newTenantWithOwner()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("INSERT INTO tenants").
		WithArgs(tenant.ID, tenant.Name, tenant.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec("INSERT INTO users").
		WithArgs(owner.ID, owner.TenantID, owner.Email, owner.PasswordHash, owner.FirstName, owner.LastName, owner.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	err := suite.repo.CreateWithOwner(suite.ctx, tenant, owner)
	assert.NoError(suite.T(), err)
}

func (suite *TenantRepoTestSuite) TestCreateWithOwner_DuplicateEmailRollsBackTenant() {
	tenant, owner := suite.newTenantWithOwner()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("INSERT INTO tenants").
		WithArgs(tenant.ID, tenant.Name, tenant.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec("INSERT INTO users").
		WithArgs(owner.ID, owner.TenantID, owner.Email, owner.PasswordHash, owner.FirstName, owner.LastName, owner.Status).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	// No commit: the deferred rollback discards the tenant row too.
	suite.mock.ExpectRollback()

	err := suite.repo.CreateWithOwner(suite.ctx, tenant, owner)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
}

package assignmentrepo_test

import (
	"context"
	"testing"
	"time"

	"parceldelivery/internal/adapters/out/postgres/assignmentrepo"
	"parceldelivery/internal/core/domain/model/assignment"
	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AssignmentRepositoryIntegrationTestSuite verifies assignment persistence
// and the experienced-free-courier lookup backing auto-assignment.
type AssignmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *assignmentrepo.GormAssignmentRepository
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&assignmentrepo.AssignmentDTO{}))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE assignments").Error)
	suite.repository = assignmentrepo.NewGormAssignmentRepository(suite.db)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AssignmentRepositoryIntegrationTestSuite) addAssignment(
	courierID kernel.UUID,
	settle func(*assignment.Assignment) error,
) *assignment.Assignment {
	a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), courierID, nil)
	suite.Require().NoError(err)
	if settle != nil {
		suite.Require().NoError(settle(a))
	}
	suite.Require().NoError(suite.repository.Add(context.Background(), a))
	return a
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAddAndGetActiveByOrderID() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	vehicleID := "BIKE-1"

	a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), courierID, &vehicleID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, a))

	retrieved, err := suite.repository.GetActiveByOrderID(ctx, a.OrderID())
	suite.Require().NoError(err)

	suite.True(retrieved.ID().IsEqual(a.ID()))
	suite.True(retrieved.CourierID().IsEqual(courierID))
	suite.Equal(assignment.Active, retrieved.Status())
	suite.Require().NotNil(retrieved.VehicleID())
	suite.Equal("BIKE-1", *retrieved.VehicleID())
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestGetActiveByOrderID_IgnoresSettled() {
	ctx := context.Background()

	a := suite.addAssignment(kernel.NewUUID(), (*assignment.Assignment).Complete)

	retrieved, err := suite.repository.GetActiveByOrderID(ctx, a.OrderID())

	suite.Nil(retrieved)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestUpdate_PersistsStatus() {
	ctx := context.Background()

	a := suite.addAssignment(kernel.NewUUID(), nil)
	suite.Require().NoError(a.Cancel())
	suite.Require().NoError(suite.repository.Update(ctx, a))

	_, err := suite.repository.GetActiveByOrderID(ctx, a.OrderID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestFindExperiencedFreeCourier() {
	ctx := context.Background()

	// veteran: one completed assignment, currently free
	veteranID := kernel.NewUUID()
	suite.addAssignment(veteranID, (*assignment.Assignment).Complete)

	// busy veteran: completed history but an active assignment right now
	busyID := kernel.NewUUID()
	suite.addAssignment(busyID, (*assignment.Assignment).Complete)
	suite.addAssignment(busyID, nil)

	// rookie: cancelled history only
	rookieID := kernel.NewUUID()
	suite.addAssignment(rookieID, (*assignment.Assignment).Cancel)

	courierID, err := suite.repository.FindExperiencedFreeCourier(ctx)
	suite.Require().NoError(err)
	suite.True(courierID.IsEqual(veteranID))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestFindExperiencedFreeCourier_NoneQualify() {
	ctx := context.Background()

	// only an active assignment in the table
	suite.addAssignment(kernel.NewUUID(), nil)

	_, err := suite.repository.FindExperiencedFreeCourier(ctx)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestAssignmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentRepositoryIntegrationTestSuite))
}

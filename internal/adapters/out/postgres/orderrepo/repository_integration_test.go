package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"distribution/internal/adapters/out/postgres/orderrepo"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence behavior
// against a real PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(agentID kernel.UUID, number string) *order.Order {
	item, err := order.NewLineItem(
		kernel.NewUUID(), 3,
		decimal.NewFromInt(150), decimal.NewFromInt(140), decimal.NewFromInt(130),
	)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		agentID,
		kernel.NewUUID(),
		"wholesale",
		[]order.LineItem{item},
		order.Totals{
			Subtotal: decimal.NewFromInt(450),
			Tax:      decimal.NewFromInt(45),
			Discount: decimal.NewFromInt(10),
			Total:    decimal.NewFromInt(485),
		},
		order.PaymentInfo{Method: "transfer", ProofRef: "proofs/tx-1.pdf"},
		"signatures/sig-1.png",
		"deliver before noon",
	)
	suite.Require().NoError(err)

	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), "SO-000001")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), restored.ID())
	suite.Equal("SO-000001", restored.Number())
	suite.Equal(order.AgentPending, restored.Stage())
	suite.Equal("wholesale", restored.AccountType())
	suite.Nil(restored.LeaderID())
	suite.Require().Len(restored.Items(), 1)
	suite.Equal(3, restored.Items()[0].Quantity())
	suite.True(restored.Items()[0].UnitPrice().Equal(decimal.NewFromInt(150)))
	suite.True(restored.Totals().Total.Equal(decimal.NewFromInt(485)))
	suite.Equal("transfer", restored.Payment().Method)
	suite.Equal("deliver before noon", restored.Notes())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransition() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), "SO-000002")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	leaderID := kernel.NewUUID()
	suite.Require().NoError(testOrder.LeaderApprove(leaderID))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.LeaderApproved, restored.Stage())
	suite.Require().NotNil(restored.LeaderID())
	suite.Equal(leaderID, *restored.LeaderID())
	// Line items survive unchanged; update never rewrites them.
	suite.Require().Len(restored.Items(), 1)
	suite.Equal(3, restored.Items()[0].Quantity())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), "SO-000003")

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByAgentInStage_FiltersAndOrders() {
	ctx := context.Background()

	agentID := kernel.NewUUID()
	otherAgentID := kernel.NewUUID()

	first := suite.createTestOrder(agentID, "SO-000010")
	second := suite.createTestOrder(agentID, "SO-000011")
	foreign := suite.createTestOrder(otherAgentID, "SO-000012")
	approved := suite.createTestOrder(agentID, "SO-000013")
	suite.Require().NoError(approved.LeaderApprove(kernel.NewUUID()))

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Times(4)
	for _, o := range []*order.Order{first, second, foreign} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	suite.Require().NoError(suite.repository.Add(ctx, approved))

	pending, err := suite.repository.GetByAgentInStage(ctx, agentID, order.AgentPending)
	suite.Require().NoError(err)

	suite.Require().Len(pending, 2)
	suite.Equal("SO-000010", pending[0].Number())
	suite.Equal("SO-000011", pending[1].Number())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

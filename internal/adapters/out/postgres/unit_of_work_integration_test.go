package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	adapterpostgres "distribution/internal/adapters/out/postgres"
	"distribution/internal/adapters/out/postgres/auditrepo"
	"distribution/internal/adapters/out/postgres/inventoryrepo"
	"distribution/internal/adapters/out/postgres/orderrepo"
	"distribution/internal/adapters/out/postgres/outboxrepo"
	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/ports"
	"distribution/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that a transition and all of its
// side effects commit or roll back as one transaction.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *adapterpostgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&inventoryrepo.RecordDTO{},
		&auditrepo.EventDTO{},
		&outboxrepo.NotificationDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, inventory_records, approval_events, notifications_outbox",
	).Error)
	suite.factory = adapterpostgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

type transitionFixture struct {
	agentID   kernel.UUID
	variantID kernel.UUID
	order     *order.Order
	event     *audit.ApprovalEvent
	message   ports.Notification
}

func (suite *UnitOfWorkIntegrationTestSuite) newTransitionFixture() transitionFixture {
	agentID := kernel.NewUUID()
	variantID := kernel.NewUUID()

	suite.Require().NoError(suite.db.Create(&inventoryrepo.RecordDTO{
		Tier:      int(inventory.TierAgent),
		OwnerID:   agentID.Bytes(),
		VariantID: variantID.Bytes(),
		Stock:     10,
	}).Error)

	item, err := order.NewLineItem(
		variantID, 2,
		decimal.NewFromInt(100), decimal.NewFromInt(90), decimal.NewFromInt(80),
	)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		"SO-000042",
		agentID,
		kernel.NewUUID(),
		"retail",
		[]order.LineItem{item},
		order.Totals{
			Subtotal: decimal.NewFromInt(200),
			Tax:      decimal.NewFromInt(20),
			Discount: decimal.Zero,
			Total:    decimal.NewFromInt(220),
		},
		order.PaymentInfo{Method: "cash", ProofRef: "proofs/cash-42.pdf"},
		"signatures/sig-42.png",
		"",
	)
	suite.Require().NoError(err)

	event, err := audit.NewApprovalEvent(
		kernel.NewUUID(), testOrder.ID(), agentID,
		audit.RoleAgent, audit.ActionCreate,
		order.StageUnknown, order.AgentPending,
		[]audit.StockDiff{
			{Tier: inventory.TierAgent, OwnerID: agentID, VariantID: variantID, Before: 10, After: 8},
		},
	)
	suite.Require().NoError(err)

	return transitionFixture{
		agentID:   agentID,
		variantID: variantID,
		order:     testOrder,
		event:     event,
		message: ports.Notification{
			ID:         kernel.NewUUID(),
			OrderID:    testOrder.ID(),
			EventType:  "OrderCreated",
			Payload:    json.RawMessage(`{"stage":"agent_pending"}`),
			OccurredAt: time.Now().UTC().Truncate(time.Microsecond),
		},
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) runTransition(uow ports.UnitOfWork, f transitionFixture) {
	ctx := context.Background()

	_, err := uow.InventoryLedger().Reserve(ctx, inventory.TierAgent, f.agentID, f.variantID, 2)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, f.order))
	suite.Require().NoError(uow.AuditLog().Append(ctx, f.event))
	suite.Require().NoError(uow.NotificationOutbox().Enqueue(ctx, f.message))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAllStores() {
	ctx := context.Background()
	f := suite.newTransitionFixture()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.runTransition(uow, f)
	suite.Require().NoError(uow.Commit(ctx))

	restored, err := suite.factory.Create().OrderRepository().Get(ctx, f.order.ID())
	suite.Require().NoError(err)
	suite.Equal(order.AgentPending, restored.Stage())

	record, err := suite.factory.Create().InventoryLedger().Get(ctx, inventory.TierAgent, f.agentID, f.variantID)
	suite.Require().NoError(err)
	suite.Equal(8, record.Stock())

	trail, err := suite.factory.Create().AuditLog().ListByOrder(ctx, f.order.ID())
	suite.Require().NoError(err)
	suite.Len(trail, 1)

	pending, err := outboxrepo.NewGormOutbox(suite.db).FetchUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Len(pending, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllStores() {
	ctx := context.Background()
	f := suite.newTransitionFixture()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.runTransition(uow, f)
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, f.order.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	record, err := suite.factory.Create().InventoryLedger().Get(ctx, inventory.TierAgent, f.agentID, f.variantID)
	suite.Require().NoError(err)
	suite.Equal(10, record.Stock())

	trail, err := suite.factory.Create().AuditLog().ListByOrder(ctx, f.order.ID())
	suite.Require().NoError(err)
	suite.Empty(trail)

	pending, err := outboxrepo.NewGormOutbox(suite.db).FetchUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentTransitions_SameOrder_ExactlyOneCommits() {
	ctx := context.Background()
	f := suite.newTransitionFixture()
	leaderID := kernel.NewUUID()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.runTransition(uow, f)
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(suite.db.Create(&inventoryrepo.RecordDTO{
		Tier:      int(inventory.TierLeader),
		OwnerID:   leaderID.Bytes(),
		VariantID: f.variantID.Bytes(),
		Stock:     10,
	}).Error)

	// Mirrors the leader approval handler: load, assert the stage, debit
	// the leader tier, persist, commit. The row lock taken by Get makes
	// the second transaction wait, reload the committed stage, and fail
	// the transition check instead of debiting a second time.
	approve := func() error {
		uow := suite.factory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		pending, err := uow.OrderRepository().Get(ctx, f.order.ID())
		if err != nil {
			return err
		}
		if err = pending.LeaderApprove(leaderID); err != nil {
			return err
		}
		if _, err = uow.InventoryLedger().Reserve(ctx, inventory.TierLeader, leaderID, f.variantID, 2); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, pending); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			results <- approve()
		}()
	}

	committed := 0
	for i := 0; i < 2; i++ {
		if err := <-results; err == nil {
			committed++
		} else {
			suite.ErrorIs(err, order.ErrInvalidTransition)
		}
	}
	suite.Equal(1, committed)

	restored, err := suite.factory.Create().OrderRepository().Get(ctx, f.order.ID())
	suite.Require().NoError(err)
	suite.Equal(order.LeaderApproved, restored.Stage())

	record, err := suite.factory.Create().InventoryLedger().Get(ctx, inventory.TierLeader, leaderID, f.variantID)
	suite.Require().NoError(err)
	suite.Equal(8, record.Stock())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositories_WithoutBegin_UseBareConnection() {
	ctx := context.Background()
	f := suite.newTransitionFixture()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, f.order))

	// No transaction was opened, so the write is already visible.
	restored, err := suite.factory.Create().OrderRepository().Get(ctx, f.order.ID())
	suite.Require().NoError(err)
	suite.Equal(f.order.ID(), restored.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin() {
	uow := suite.factory.Create()
	suite.ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

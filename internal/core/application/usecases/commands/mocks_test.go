package commands_test

import (
	"context"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByAgentInStage(
	ctx context.Context, agentID kernel.UUID, stage order.Stage,
) ([]*order.Order, error) {
	args := m.Called(ctx, agentID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockInventoryLedger struct{ mock.Mock }

func (m *MockInventoryLedger) Reserve(
	ctx context.Context, tier inventory.Tier, ownerID, variantID kernel.UUID, qty int,
) (int, error) {
	args := m.Called(ctx, tier, ownerID, variantID, qty)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryLedger) Release(
	ctx context.Context, tier inventory.Tier, ownerID, variantID kernel.UUID, qty int,
) (int, error) {
	args := m.Called(ctx, tier, ownerID, variantID, qty)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryLedger) Get(
	ctx context.Context, tier inventory.Tier, ownerID, variantID kernel.UUID,
) (*inventory.Record, error) {
	args := m.Called(ctx, tier, ownerID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Record), args.Error(1)
}

type MockAuditLog struct{ mock.Mock }

func (m *MockAuditLog) Append(ctx context.Context, event *audit.ApprovalEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditLog) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*audit.ApprovalEvent, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.ApprovalEvent), args.Error(1)
}

type MockNotificationOutbox struct{ mock.Mock }

func (m *MockNotificationOutbox) Enqueue(ctx context.Context, notification ports.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type MockApprovalUoW struct{ mock.Mock }

func (m *MockApprovalUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockApprovalUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockApprovalUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockApprovalUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockApprovalUoW) InventoryLedger() ports.InventoryLedger {
	args := m.Called()
	return args.Get(0).(ports.InventoryLedger)
}

func (m *MockApprovalUoW) AuditLog() ports.AuditLog {
	args := m.Called()
	return args.Get(0).(ports.AuditLog)
}

func (m *MockApprovalUoW) NotificationOutbox() ports.NotificationOutbox {
	args := m.Called()
	return args.Get(0).(ports.NotificationOutbox)
}

type MockApprovalUoWFactory struct{ mock.Mock }

func (m *MockApprovalUoWFactory) Create() commands.ApprovalUoW {
	args := m.Called()
	return args.Get(0).(commands.ApprovalUoW)
}

type MockOrderNumberSequence struct{ mock.Mock }

func (m *MockOrderNumberSequence) Next(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockClientDirectory struct{ mock.Mock }

func (m *MockClientDirectory) GetClient(ctx context.Context, clientID kernel.UUID) (ports.ClientProfile, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(ports.ClientProfile), args.Error(1)
}

type MockPriceList struct{ mock.Mock }

func (m *MockPriceList) GetPricing(ctx context.Context, variantID kernel.UUID) (ports.VariantPricing, error) {
	args := m.Called(ctx, variantID)
	return args.Get(0).(ports.VariantPricing), args.Error(1)
}

type MockLeaderApprover struct{ mock.Mock }

func (m *MockLeaderApprover) Handle(ctx context.Context, cmd commands.LeaderApproveCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockAdminApprover struct{ mock.Mock }

func (m *MockAdminApprover) Handle(ctx context.Context, cmd commands.AdminApproveCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

// newPendingOrder builds a single-line order in agent_pending for handler tests.
func newPendingOrder(agentID kernel.UUID, variantID kernel.UUID, qty int) *order.Order {
	item, err := order.NewLineItem(
		variantID, qty,
		decimal.NewFromInt(100), decimal.NewFromInt(90), decimal.NewFromInt(80),
	)
	if err != nil {
		panic(err)
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"SO-000001",
		agentID,
		kernel.NewUUID(),
		"retail",
		[]order.LineItem{item},
		order.Totals{
			Subtotal: decimal.NewFromInt(100).Mul(decimal.NewFromInt(int64(qty))),
			Tax:      decimal.NewFromInt(10),
			Discount: decimal.Zero,
			Total:    decimal.NewFromInt(100).Mul(decimal.NewFromInt(int64(qty))).Add(decimal.NewFromInt(10)),
		},
		order.PaymentInfo{Method: "transfer", ProofRef: "proof/1.pdf"},
		"sig/1.png",
		"",
	)
	if err != nil {
		panic(err)
	}

	return o
}

// newApprovedOrder builds an order already advanced to leader_approved.
func newApprovedOrder(agentID, leaderID, variantID kernel.UUID, qty int) *order.Order {
	o := newPendingOrder(agentID, variantID, qty)
	if err := o.LeaderApprove(leaderID); err != nil {
		panic(err)
	}
	return o
}

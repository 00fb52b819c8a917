package commands_test

import (
	"testing"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminRejectCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	agentID := kernel.NewUUID()
	leaderID := kernel.NewUUID()
	adminID := kernel.NewUUID()
	variantID := kernel.NewUUID()
	approved := newApprovedOrder(agentID, leaderID, variantID, 4)

	cmd, err := commands.NewAdminRejectCommand(approved.ID(), adminID, "duplicate submission")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledger := new(MockInventoryLedger)
	auditLog := new(MockAuditLog)
	outbox := new(MockNotificationOutbox)
	uow := new(MockApprovalUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, approved.ID()).Return(approved, nil).Once(),
		uow.On("InventoryLedger").Return(ledger).Once(),
		ledger.On("Release", ctx, inventory.TierLeader, leaderID, variantID, 4).Return(9, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("AuditLog").Return(auditLog).Once(),
		auditLog.On("Append", ctx, mock.AnythingOfType("*audit.ApprovalEvent")).Return(nil).Once(),
		uow.On("NotificationOutbox").Return(outbox).Once(),
		outbox.On("Enqueue", ctx, mock.AnythingOfType("ports.Notification")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockApprovalUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdminRejectCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.AdminRejected, approved.Stage())
	assert.Equal(t, "duplicate submission", approved.RejectionReason())
	assert.True(t, approved.Stage().IsTerminal())

	// Only the leader tier is restored. The agent's reservation was already
	// consumed by the order's progression; touching it would double-credit.
	require.Len(t, ledger.Calls, 1)
	assert.Equal(t, "Release", ledger.Calls[0].Method)
	assert.Equal(t, inventory.TierLeader, ledger.Calls[0].Arguments[1])
	assert.Equal(t, leaderID, ledger.Calls[0].Arguments[2])
	ledger.AssertNotCalled(t, "Release", ctx, inventory.TierAgent, agentID, variantID, 4)

	event := auditLog.Calls[0].Arguments[1].(*audit.ApprovalEvent)
	assert.Equal(t, audit.ActionAdminReject, event.Action())
	assert.Equal(t, order.LeaderApproved, event.StageBefore())
	assert.Equal(t, order.AdminRejected, event.StageAfter())
	require.Len(t, event.StockDiffs(), 1)
	assert.Equal(t, inventory.TierLeader, event.StockDiffs()[0].Tier)
	assert.Equal(t, 5, event.StockDiffs()[0].Before)
	assert.Equal(t, 9, event.StockDiffs()[0].After)

	uow.AssertExpectations(t)
}

func TestAdminRejectCommandHandler_Handle_PendingOrder(t *testing.T) {
	ctx := t.Context()

	pending := newPendingOrder(kernel.NewUUID(), kernel.NewUUID(), 2)

	cmd, err := commands.NewAdminRejectCommand(pending.ID(), kernel.NewUUID(), "not yet endorsed")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledger := new(MockInventoryLedger)
	uow := new(MockApprovalUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockApprovalUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdminRejectCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	ledger.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAdminRejectCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()

	leaderID := kernel.NewUUID()
	variantID := kernel.NewUUID()
	approved := newApprovedOrder(kernel.NewUUID(), leaderID, variantID, 1)

	cmd, err := commands.NewAdminRejectCommand(approved.ID(), kernel.NewUUID(), "reason")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledger := new(MockInventoryLedger)
	uow := new(MockApprovalUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, approved.ID()).Return(approved, nil).Once(),
		uow.On("InventoryLedger").Return(ledger).Once(),
		ledger.On("Release", ctx, inventory.TierLeader, leaderID, variantID, 1).Return(3, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(assert.AnError).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockApprovalUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdminRejectCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

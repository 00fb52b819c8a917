package commands_test

import (
	"errors"
	"testing"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminApproveCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	adminID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()
	variantID := kernel.NewUUID()
	approved := newApprovedOrder(kernel.NewUUID(), kernel.NewUUID(), variantID, 4)

	cmd, err := commands.NewAdminApproveCommand(approved.ID(), adminID)
	require.NoError(t, err)

	// Master price moved from 100 to 120 since creation.
	prices := new(MockPriceList)
	prices.On("GetPricing", ctx, variantID).
		Return(ports.VariantPricing{VariantID: variantID, UnitPrice: decimal.NewFromInt(120)}, nil).Once()

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
		ledger.On("Reserve", ctx, inventory.TierMain, warehouseID, variantID, 4).Return(96, nil).Once(),
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

	handler := commands.NewAdminApproveCommandHandler(factory, prices, warehouseID)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.AdminApproved, approved.Stage())
	assert.True(t, approved.Stage().IsTerminal())

	// Final totals re-derived from current pricing: 4 * 120 + 10 tax.
	assert.True(t, approved.Totals().Subtotal.Equal(decimal.NewFromInt(480)))
	assert.True(t, approved.Totals().Total.Equal(decimal.NewFromInt(490)))

	event := auditLog.Calls[0].Arguments[1].(*audit.ApprovalEvent)
	assert.Equal(t, audit.ActionAdminApprove, event.Action())
	assert.Equal(t, order.LeaderApproved, event.StageBefore())
	require.Len(t, event.StockDiffs(), 1)
	assert.Equal(t, inventory.TierMain, event.StockDiffs()[0].Tier)
	assert.Equal(t, warehouseID, event.StockDiffs()[0].OwnerID)

	uow.AssertExpectations(t)
}

func TestAdminApproveCommandHandler_Handle_PriceListDown(t *testing.T) {
	ctx := t.Context()

	adminID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()
	variantID := kernel.NewUUID()
	approved := newApprovedOrder(kernel.NewUUID(), kernel.NewUUID(), variantID, 2)
	snapshotTotal := approved.Totals().Total

	cmd, err := commands.NewAdminApproveCommand(approved.ID(), adminID)
	require.NoError(t, err)

	prices := new(MockPriceList)
	prices.On("GetPricing", ctx, variantID).
		Return(ports.VariantPricing{}, errors.New("price list unavailable")).Once()

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
		ledger.On("Reserve", ctx, inventory.TierMain, warehouseID, variantID, 2).Return(50, nil).Once(),
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

	handler := commands.NewAdminApproveCommandHandler(factory, prices, warehouseID)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	// Creation-time snapshot locked in unchanged.
	assert.True(t, approved.Totals().Total.Equal(snapshotTotal))
}

func TestAdminApproveCommandHandler_Handle_PendingOrder(t *testing.T) {
	ctx := t.Context()

	warehouseID := kernel.NewUUID()
	pending := newPendingOrder(kernel.NewUUID(), kernel.NewUUID(), 2)

	cmd, err := commands.NewAdminApproveCommand(pending.ID(), kernel.NewUUID())
	require.NoError(t, err)

	prices := new(MockPriceList)
	prices.On("GetPricing", ctx, mock.Anything).
		Return(ports.VariantPricing{UnitPrice: decimal.NewFromInt(100)}, nil).Maybe()

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

	handler := commands.NewAdminApproveCommandHandler(factory, prices, warehouseID)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	ledger.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminApproveCommandHandler_Handle_WarehouseOutOfStock(t *testing.T) {
	ctx := t.Context()

	warehouseID := kernel.NewUUID()
	variantID := kernel.NewUUID()
	approved := newApprovedOrder(kernel.NewUUID(), kernel.NewUUID(), variantID, 7)

	cmd, err := commands.NewAdminApproveCommand(approved.ID(), kernel.NewUUID())
	require.NoError(t, err)

	prices := new(MockPriceList)
	prices.On("GetPricing", ctx, variantID).
		Return(ports.VariantPricing{UnitPrice: decimal.NewFromInt(100)}, nil).Once()

	stockErr := inventory.NewInsufficientStockError(inventory.TierMain, variantID, 3, 7)

	orderRepo := new(MockOrderRepository)
	ledger := new(MockInventoryLedger)
	uow := new(MockApprovalUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, approved.ID()).Return(approved, nil).Once(),
		uow.On("InventoryLedger").Return(ledger).Once(),
		ledger.On("Reserve", ctx, inventory.TierMain, warehouseID, variantID, 7).Return(0, stockErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockApprovalUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdminApproveCommandHandler(factory, prices, warehouseID)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

package commands

import (
	"context"

	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
)

// LeaderApproveCommandHandler advances an order from agent_pending to
// leader_approved. The leader's own tier is debited for every line; the
// agent-tier reservation taken at creation stays in place until the order
// reaches a terminal stage.
type LeaderApproveCommandHandler struct {
	uowFactory ApprovalUoWFactory
}

// NewLeaderApproveCommandHandler creates a handler for leader approval operations.
func NewLeaderApproveCommandHandler(uowFactory ApprovalUoWFactory) LeaderApproveCommandHandler {
	return LeaderApproveCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the leader approval command. Fails with an
// InvalidTransitionError if the order is not in agent_pending, or with an
// InsufficientStockError if any line exceeds the leader's stock; either way
// nothing is persisted.
func (h LeaderApproveCommandHandler) Handle(ctx context.Context, cmd LeaderApproveCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	pending, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	stageBefore := pending.Stage()
	if err = pending.LeaderApprove(cmd.LeaderID()); err != nil {
		return err
	}

	diffs, err := reserveItems(ctx, uow.InventoryLedger(), inventory.TierLeader, cmd.LeaderID(), pending.Items())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, pending); err != nil {
		return err
	}

	event, err := audit.NewApprovalEvent(
		kernel.NewUUID(),
		pending.ID(),
		cmd.LeaderID(),
		audit.RoleLeader,
		audit.ActionLeaderApprove,
		stageBefore,
		pending.Stage(),
		diffs,
	)
	if err != nil {
		return err
	}

	if err = uow.AuditLog().Append(ctx, event); err != nil {
		return err
	}

	notification, err := newOrderNotification(EventOrderLeaderApproved, pending, cmd.LeaderID())
	if err != nil {
		return err
	}

	if err = uow.NotificationOutbox().Enqueue(ctx, notification); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

package commands

import (
	"context"

	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
)

// LeaderRejectCommandHandler terminates an order at leader_rejected and
// returns the creation-time reservation to the agent's tier. No other tier
// is touched: the leader never debited stock for an order they reject.
type LeaderRejectCommandHandler struct {
	uowFactory ApprovalUoWFactory
}

// NewLeaderRejectCommandHandler creates a handler for leader rejection operations.
func NewLeaderRejectCommandHandler(uowFactory ApprovalUoWFactory) LeaderRejectCommandHandler {
	return LeaderRejectCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the leader rejection command. Fails with an
// InvalidTransitionError if the order is not in agent_pending.
func (h LeaderRejectCommandHandler) Handle(ctx context.Context, cmd LeaderRejectCommand) error {
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
	if err = pending.LeaderReject(cmd.LeaderID(), cmd.Reason()); err != nil {
		return err
	}

	diffs, err := releaseItems(ctx, uow.InventoryLedger(), inventory.TierAgent, pending.AgentID(), pending.Items())
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
		audit.ActionLeaderReject,
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

	notification, err := newOrderNotification(EventOrderLeaderRejected, pending, cmd.LeaderID())
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

package commands

import (
	"context"

	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
)

// AdminRejectCommandHandler terminates an order at admin_rejected and
// restores the leader-tier stock debited at leader approval. The agent tier
// is deliberately left alone: its reservation was already consumed by the
// order's progression, and restoring both tiers would double-credit the
// chain.
type AdminRejectCommandHandler struct {
	uowFactory ApprovalUoWFactory
}

// NewAdminRejectCommandHandler creates a handler for admin rejection operations.
func NewAdminRejectCommandHandler(uowFactory ApprovalUoWFactory) AdminRejectCommandHandler {
	return AdminRejectCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the admin rejection command. Fails with an
// InvalidTransitionError if the order is not in leader_approved.
func (h AdminRejectCommandHandler) Handle(ctx context.Context, cmd AdminRejectCommand) error {
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

	approved, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	stageBefore := approved.Stage()
	if err = approved.AdminReject(cmd.Reason()); err != nil {
		return err
	}

	// A leader_approved order always carries its approving leader; a nil
	// here means the row bypassed the aggregate's consistency rule.
	leaderID := approved.LeaderID()
	if leaderID == nil {
		return errs.NewValueIsRequiredError("leaderID")
	}

	diffs, err := releaseItems(ctx, uow.InventoryLedger(), inventory.TierLeader, *leaderID, approved.Items())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, approved); err != nil {
		return err
	}

	event, err := audit.NewApprovalEvent(
		kernel.NewUUID(),
		approved.ID(),
		cmd.AdminID(),
		audit.RoleAdmin,
		audit.ActionAdminReject,
		stageBefore,
		approved.Stage(),
		diffs,
	)
	if err != nil {
		return err
	}

	if err = uow.AuditLog().Append(ctx, event); err != nil {
		return err
	}

	notification, err := newOrderNotification(EventOrderAdminRejected, approved, cmd.AdminID())
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

package commands

import (
	"context"
	"errors"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const lockRetryAttempts = 3

// Per-edge handler contracts consumed by the bulk coordinator. Satisfied by
// LeaderApproveCommandHandler and AdminApproveCommandHandler; declared here
// so tests can substitute them.
type (
	// LeaderApprover advances one order from agent_pending to leader_approved.
	LeaderApprover interface {
		Handle(ctx context.Context, cmd LeaderApproveCommand) error
	}

	// AdminApprover advances one order from leader_approved to admin_approved.
	AdminApprover interface {
		Handle(ctx context.Context, cmd AdminApproveCommand) error
	}
)

// BulkFailure records one order the sweep could not advance and why.
type BulkFailure struct {
	OrderID kernel.UUID
	Err     error
}

// BulkApproveResult summarizes a sweep. A sweep never fails as a whole
// because one order failed: each order succeeds or lands in Failed with its
// own error.
type BulkApproveResult struct {
	Succeeded []kernel.UUID
	Failed    []BulkFailure
}

// BulkApproveCommandHandler sweeps all of one agent's orders in the stage
// preceding the target and advances each through the corresponding single
// approval path. Each order runs in its own transaction, so a mid-sweep
// failure leaves prior orders approved and later orders untouched.
type BulkApproveCommandHandler struct {
	uowFactory    ApprovalUoWFactory
	leaderApprove LeaderApprover
	adminApprove  AdminApprover
}

// NewBulkApproveCommandHandler creates the bulk sweep coordinator.
func NewBulkApproveCommandHandler(
	uowFactory ApprovalUoWFactory,
	leaderApprove LeaderApprover,
	adminApprove AdminApprover,
) BulkApproveCommandHandler {
	return BulkApproveCommandHandler{
		uowFactory:    uowFactory,
		leaderApprove: leaderApprove,
		adminApprove:  adminApprove,
	}
}

// Handle processes the bulk approval sweep. Orders are visited in creation
// order. Transient lock contention on an individual order is retried a few
// times with backoff before that order is reported as failed; any other
// error fails the order immediately. Context cancellation stops the sweep
// and returns the partial result.
func (h BulkApproveCommandHandler) Handle(ctx context.Context, cmd BulkApproveCommand) (BulkApproveResult, error) {
	var result BulkApproveResult

	if err := cmd.Validate(); err != nil {
		return result, err
	}

	source := order.AgentPending
	if cmd.Target() == order.AdminApproved {
		source = order.LeaderApproved
	}

	orderRepo := h.uowFactory.Create().OrderRepository()
	eligible, err := orderRepo.GetByAgentInStage(ctx, cmd.AgentID(), source)
	if err != nil {
		return result, err
	}

	for _, candidate := range eligible {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		opErr := withLockRetry(ctx, func() error {
			return h.approveOne(ctx, candidate.ID(), cmd)
		})
		if opErr != nil {
			result.Failed = append(result.Failed, BulkFailure{OrderID: candidate.ID(), Err: opErr})
			continue
		}

		result.Succeeded = append(result.Succeeded, candidate.ID())
	}

	return result, nil
}

func (h BulkApproveCommandHandler) approveOne(ctx context.Context, orderID kernel.UUID, cmd BulkApproveCommand) error {
	if cmd.Target() == order.AdminApproved {
		single, err := NewAdminApproveCommand(orderID, cmd.ActorID())
		if err != nil {
			return err
		}
		return h.adminApprove.Handle(ctx, single)
	}

	single, err := NewLeaderApproveCommand(orderID, cmd.ActorID())
	if err != nil {
		return err
	}
	return h.leaderApprove.Handle(ctx, single)
}

// withLockRetry retries op only when it failed on database lock contention.
// Every other error is permanent and surfaces immediately.
func withLockRetry(ctx context.Context, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxElapsedTime = 5 * time.Second

	return backoff.Retry(func() error {
		if err := op(); err != nil {
			if errors.Is(err, errs.ErrLockContention) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(policy, lockRetryAttempts), ctx))
}

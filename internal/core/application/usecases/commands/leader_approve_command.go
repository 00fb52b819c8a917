package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

var ErrLeaderApproveCommandIsNotConstructed = errors.New(
	"LeaderApproveCommand must be created via NewLeaderApproveCommand constructor",
)

// LeaderApproveCommand represents a leader endorsing a pending order.
type LeaderApproveCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	leaderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewLeaderApproveCommand creates a command for a leader to approve an order.
func NewLeaderApproveCommand(orderID, leaderID kernel.UUID) (LeaderApproveCommand, error) {
	command := LeaderApproveCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setLeaderID(leaderID),
	); err != nil {
		return LeaderApproveCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c LeaderApproveCommand) Validate() error {
	return c.guard.Validate(ErrLeaderApproveCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being approved.
func (c LeaderApproveCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LeaderID returns the identifier of the approving leader.
func (c LeaderApproveCommand) LeaderID() kernel.UUID {
	return c.leaderID
}

func (c *LeaderApproveCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *LeaderApproveCommand) setLeaderID(leaderID kernel.UUID) error {
	if err := leaderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("leaderID", err)
	}

	c.leaderID = leaderID
	return nil
}

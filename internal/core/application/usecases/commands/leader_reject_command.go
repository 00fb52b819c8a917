package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

var ErrLeaderRejectCommandIsNotConstructed = errors.New(
	"LeaderRejectCommand must be created via NewLeaderRejectCommand constructor",
)

// LeaderRejectCommand represents a leader declining a pending order. The
// reason is optional at this stage.
type LeaderRejectCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	leaderID kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewLeaderRejectCommand creates a command for a leader to reject an order.
func NewLeaderRejectCommand(orderID, leaderID kernel.UUID, reason string) (LeaderRejectCommand, error) {
	command := LeaderRejectCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setLeaderID(leaderID),
	); err != nil {
		return LeaderRejectCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c LeaderRejectCommand) Validate() error {
	return c.guard.Validate(ErrLeaderRejectCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being rejected.
func (c LeaderRejectCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LeaderID returns the identifier of the rejecting leader.
func (c LeaderRejectCommand) LeaderID() kernel.UUID {
	return c.leaderID
}

// Reason returns the optional rejection reason.
func (c LeaderRejectCommand) Reason() string {
	return c.reason
}

func (c *LeaderRejectCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *LeaderRejectCommand) setLeaderID(leaderID kernel.UUID) error {
	if err := leaderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("leaderID", err)
	}

	c.leaderID = leaderID
	return nil
}

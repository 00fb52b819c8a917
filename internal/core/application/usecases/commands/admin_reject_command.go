package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

var ErrAdminRejectCommandIsNotConstructed = errors.New(
	"AdminRejectCommand must be created via NewAdminRejectCommand constructor",
)

// AdminRejectCommand represents an administrator terminally rejecting a
// leader-approved order. Unlike a leader rejection, the reason is mandatory:
// by this point real stock has moved and someone has to answer for why the
// order died.
type AdminRejectCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	adminID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewAdminRejectCommand creates a command for an admin to reject an order.
// Fails when the reason is empty.
func NewAdminRejectCommand(orderID, adminID kernel.UUID, reason string) (AdminRejectCommand, error) {
	command := AdminRejectCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setAdminID(adminID),
		command.setReason(reason),
	); err != nil {
		return AdminRejectCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AdminRejectCommand) Validate() error {
	return c.guard.Validate(ErrAdminRejectCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being rejected.
func (c AdminRejectCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AdminID returns the identifier of the rejecting administrator.
func (c AdminRejectCommand) AdminID() kernel.UUID {
	return c.adminID
}

// Reason returns the mandatory rejection reason.
func (c AdminRejectCommand) Reason() string {
	return c.reason
}

func (c *AdminRejectCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *AdminRejectCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("adminID", err)
	}

	c.adminID = adminID
	return nil
}

func (c *AdminRejectCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

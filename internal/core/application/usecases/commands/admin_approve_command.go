package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

var ErrAdminApproveCommandIsNotConstructed = errors.New(
	"AdminApproveCommand must be created via NewAdminApproveCommand constructor",
)

// AdminApproveCommand represents the final settlement of a leader-approved
// order by an administrator.
type AdminApproveCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	adminID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdminApproveCommand creates a command for an admin to settle an order.
func NewAdminApproveCommand(orderID, adminID kernel.UUID) (AdminApproveCommand, error) {
	command := AdminApproveCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setAdminID(adminID),
	); err != nil {
		return AdminApproveCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AdminApproveCommand) Validate() error {
	return c.guard.Validate(ErrAdminApproveCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being settled.
func (c AdminApproveCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AdminID returns the identifier of the settling administrator.
func (c AdminApproveCommand) AdminID() kernel.UUID {
	return c.adminID
}

func (c *AdminApproveCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *AdminApproveCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("adminID", err)
	}

	c.adminID = adminID
	return nil
}

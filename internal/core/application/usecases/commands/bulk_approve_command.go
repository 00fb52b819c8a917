package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

var (
	ErrBulkApproveCommandIsNotConstructed = errors.New(
		"BulkApproveCommand must be created via NewBulkApproveCommand constructor",
	)
	ErrBulkTargetStageIsInvalid = errors.New(
		"bulk approval target must be leader_approved or admin_approved",
	)
)

// BulkApproveCommand represents a request to approve every eligible order of
// one agent in a single sweep. The target stage selects the sweep: leaders
// sweep agent_pending orders to leader_approved, admins sweep
// leader_approved orders to admin_approved.
type BulkApproveCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	actorID kernel.UUID
	target  order.Stage

	guard guard.ConstructorGuard
}

// NewBulkApproveCommand creates a command for a bulk approval sweep.
// The target stage must be one of the two approval stages.
func NewBulkApproveCommand(agentID, actorID kernel.UUID, target order.Stage) (BulkApproveCommand, error) {
	command := BulkApproveCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setActorID(actorID),
		command.setTarget(target),
	); err != nil {
		return BulkApproveCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkApproveCommand) Validate() error {
	return c.guard.Validate(ErrBulkApproveCommandIsNotConstructed)
}

// AgentID returns the agent whose orders are being swept.
func (c BulkApproveCommand) AgentID() kernel.UUID {
	return c.agentID
}

// ActorID returns the leader or admin performing the sweep.
func (c BulkApproveCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Target returns the stage the sweep advances orders into.
func (c BulkApproveCommand) Target() order.Stage {
	return c.target
}

func (c *BulkApproveCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agentID", err)
	}

	c.agentID = agentID
	return nil
}

func (c *BulkApproveCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}

func (c *BulkApproveCommand) setTarget(target order.Stage) error {
	if target != order.LeaderApproved && target != order.AdminApproved {
		return ErrBulkTargetStageIsInvalid
	}

	c.target = target
	return nil
}

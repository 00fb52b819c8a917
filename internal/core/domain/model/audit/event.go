package audit

import (
	"errors"
	"time"

	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
)

// ErrApprovalEventIsNotConstructed is returned when an ApprovalEvent was not
// created through NewApprovalEvent or RestoreApprovalEvent.
var ErrApprovalEventIsNotConstructed = errors.New("ApprovalEvent must be created via NewApprovalEvent or RestoreApprovalEvent constructor")

// StockDiff records the before/after stock of one ledger key touched by a
// transition. An event carries one diff per line item.
type StockDiff struct {
	Tier      inventory.Tier `json:"tier"`
	OwnerID   kernel.UUID    `json:"owner_id"`
	VariantID kernel.UUID    `json:"variant_id"`
	Before    int            `json:"before"`
	After     int            `json:"after"`
}

// ApprovalEvent is one immutable entry of the approval trail. It is created
// inside the same unit of work as the transition it records, so a committed
// transition and its event are never observable apart.
type ApprovalEvent struct {
	id          kernel.UUID
	orderID     kernel.UUID
	actorID     kernel.UUID
	actorRole   Role
	action      Action
	stageBefore order.Stage
	stageAfter  order.Stage
	stockDiffs  []StockDiff
	occurredAt  time.Time

	isConstructed bool
}

// NewApprovalEvent creates an event for a transition that just happened,
// stamped with the current time.
func NewApprovalEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	actorID kernel.UUID,
	actorRole Role,
	action Action,
	stageBefore order.Stage,
	stageAfter order.Stage,
	stockDiffs []StockDiff,
) (*ApprovalEvent, error) {
	return RestoreApprovalEvent(
		id, orderID, actorID, actorRole, action,
		stageBefore, stageAfter, stockDiffs, time.Now().UTC(),
	)
}

// RestoreApprovalEvent reconstructs an event from persistence.
func RestoreApprovalEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	actorID kernel.UUID,
	actorRole Role,
	action Action,
	stageBefore order.Stage,
	stageAfter order.Stage,
	stockDiffs []StockDiff,
	occurredAt time.Time,
) (*ApprovalEvent, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
		action.Validate(),
		stageAfter.Validate(),
	); err != nil {
		return nil, err
	}

	// Creation has no before-stage; every other action does.
	if action != ActionCreate {
		if err := stageBefore.Validate(); err != nil {
			return nil, err
		}
	}

	diffs := make([]StockDiff, len(stockDiffs))
	copy(diffs, stockDiffs)

	return &ApprovalEvent{
		id:            id,
		orderID:       orderID,
		actorID:       actorID,
		actorRole:     actorRole,
		action:        action,
		stageBefore:   stageBefore,
		stageAfter:    stageAfter,
		stockDiffs:    diffs,
		occurredAt:    occurredAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the event was created through a constructor.
func (e *ApprovalEvent) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrApprovalEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *ApprovalEvent) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order the event belongs to.
func (e *ApprovalEvent) OrderID() kernel.UUID {
	return e.orderID
}

// ActorID returns who performed the transition.
func (e *ApprovalEvent) ActorID() kernel.UUID {
	return e.actorID
}

// ActorRole returns the role the actor held.
func (e *ApprovalEvent) ActorRole() Role {
	return e.actorRole
}

// Action returns which edge the event records.
func (e *ApprovalEvent) Action() Action {
	return e.action
}

// StageBefore returns the stage before the transition. For ActionCreate it
// is StageUnknown, since the order did not exist yet.
func (e *ApprovalEvent) StageBefore() order.Stage {
	return e.stageBefore
}

// StageAfter returns the stage after the transition.
func (e *ApprovalEvent) StageAfter() order.Stage {
	return e.stageAfter
}

// StockDiffs returns the per-item ledger snapshot taken by the transition.
func (e *ApprovalEvent) StockDiffs() []StockDiff {
	diffs := make([]StockDiff, len(e.stockDiffs))
	copy(diffs, e.stockDiffs)
	return diffs
}

// OccurredAt returns when the transition committed.
func (e *ApprovalEvent) OccurredAt() time.Time {
	return e.occurredAt
}

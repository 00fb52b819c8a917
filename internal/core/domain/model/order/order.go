package order

import (
	"errors"
	"fmt"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Totals groups the monetary summary of an order. The values are computed
// upstream and treated as opaque; the aggregate only snapshots them at
// creation and replaces them once, at admin approval.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// PaymentInfo records how the client paid and where the proof document lives.
type PaymentInfo struct {
	Method   string
	ProofRef string
}

// Order is the aggregate root for the approval workflow. It owns the stage
// state machine and the immutable line-item snapshot taken at creation.
//
// Order follows these invariants:
//   - stage only ever advances along the edges defined by Stage's transition table;
//   - line items are fixed at creation and never change afterwards;
//   - a leader reference appears exactly when a leader has acted on the order;
//   - terminal rejection stages carry the rejection reason (mandatory for
//     admin rejection, optional for leader rejection);
//   - totals are replaced exactly once, when admin approval locks them in.
//
// All mutation happens through the transition methods; the struct uses
// private fields so out-of-graph changes cannot be expressed.
type Order struct {
	id              kernel.UUID
	number          string
	agentID         kernel.UUID
	clientID        kernel.UUID
	accountType     string
	leaderID        *kernel.UUID
	items           []LineItem
	stage           Stage
	totals          Totals
	payment         PaymentInfo
	signatureRef    string
	notes           string
	rejectionReason string
	createdAt       time.Time
	updatedAt       time.Time

	isConstructed bool
}

// NewOrder creates an order in the agent_pending stage. This is the only way
// to create a valid new Order; the caller is expected to have already
// reserved agent-tier stock for every line item within the same unit of work.
func NewOrder(
	id kernel.UUID,
	number string,
	agentID kernel.UUID,
	clientID kernel.UUID,
	accountType string,
	items []LineItem,
	totals Totals,
	payment PaymentInfo,
	signatureRef string,
	notes string,
) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		stage:         AgentPending,
		accountType:   accountType,
		totals:        totals,
		payment:       payment,
		signatureRef:  signatureRef,
		notes:         notes,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		order.setAgentID(agentID),
		order.setClientID(clientID),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an order from persistence, including its stage,
// leader reference, and timestamps. It re-validates the stage/leader
// consistency rule so corrupted rows are rejected at the boundary.
func RestoreOrder(
	id kernel.UUID,
	number string,
	agentID kernel.UUID,
	clientID kernel.UUID,
	accountType string,
	leaderID *kernel.UUID,
	items []LineItem,
	stage Stage,
	totals Totals,
	payment PaymentInfo,
	signatureRef string,
	notes string,
	rejectionReason string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		stage:           stage,
		accountType:     accountType,
		totals:          totals,
		payment:         payment,
		signatureRef:    signatureRef,
		notes:           notes,
		rejectionReason: rejectionReason,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		order.setAgentID(agentID),
		order.setClientID(clientID),
		order.setItems(items),
		stage.Validate(),
		stage.ValidateCanHaveLeader(leaderID != nil),
	); err != nil {
		return nil, err
	}

	if leaderID != nil {
		if err := leaderID.Validate(); err != nil {
			return nil, err
		}
		order.leaderID = leaderID
	}

	return order, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-presentable order number.
func (o *Order) Number() string {
	return o.number
}

// AgentID returns the creating agent's identifier.
func (o *Order) AgentID() kernel.UUID {
	return o.agentID
}

// ClientID returns the client the order was placed for.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// AccountType returns the client account type snapshotted at creation.
func (o *Order) AccountType() string {
	return o.accountType
}

// LeaderID returns the leader who acted on the order, or nil while the order
// is still agent_pending.
func (o *Order) LeaderID() *kernel.UUID {
	return o.leaderID
}

// Items returns the immutable line-item snapshot.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Stage returns the order's current position in the approval flow.
func (o *Order) Stage() Stage {
	return o.stage
}

// Totals returns the current monetary summary. Until admin approval this is
// the pending estimate captured at creation.
func (o *Order) Totals() Totals {
	return o.totals
}

// Payment returns the payment method and proof reference.
func (o *Order) Payment() PaymentInfo {
	return o.payment
}

// SignatureRef returns the stored reference to the client signature.
func (o *Order) SignatureRef() string {
	return o.signatureRef
}

// Notes returns the free-text notes captured at creation.
func (o *Order) Notes() string {
	return o.notes
}

// RejectionReason returns the reason recorded on a terminal rejection,
// empty otherwise.
func (o *Order) RejectionReason() string {
	return o.rejectionReason
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last transition timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// LeaderApprove advances the order to leader_approved and records the
// endorsing leader. The caller must deduct leader-tier stock in the same
// unit of work.
func (o *Order) LeaderApprove(leaderID kernel.UUID) error {
	if err := leaderID.Validate(); err != nil {
		return err
	}

	newStage, err := o.stage.TransitionTo(LeaderApproved)
	if err != nil {
		return err
	}

	o.stage = newStage
	o.leaderID = &leaderID
	o.touch()
	return nil
}

// LeaderReject terminates the order at leader_rejected. A reason is a
// courtesy at this level and may be empty. The caller must release the
// agent-tier reservation in the same unit of work.
func (o *Order) LeaderReject(leaderID kernel.UUID, reason string) error {
	if err := leaderID.Validate(); err != nil {
		return err
	}

	newStage, err := o.stage.TransitionTo(LeaderRejected)
	if err != nil {
		return err
	}

	o.stage = newStage
	o.leaderID = &leaderID
	o.rejectionReason = reason
	o.touch()
	return nil
}

// AdminApprove settles the order: it advances to admin_approved and locks in
// the final totals, superseding the pending estimate. The caller must deduct
// main-tier stock in the same unit of work.
func (o *Order) AdminApprove(finalTotals Totals) error {
	newStage, err := o.stage.TransitionTo(AdminApproved)
	if err != nil {
		return err
	}

	o.stage = newStage
	o.totals = finalTotals
	o.touch()
	return nil
}

// AdminReject terminates the order at admin_rejected. The reason is required
// at this level: the order goes back to a human who needs to know why. The
// caller must release the leader-tier reservation, and only the leader-tier
// reservation, in the same unit of work.
func (o *Order) AdminReject(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	newStage, err := o.stage.TransitionTo(AdminRejected)
	if err != nil {
		return err
	}

	o.stage = newStage
	o.rejectionReason = reason
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentID is invalid", err)
	}
	o.agentID = agentID
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("clientID is invalid", err)
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d] is invalid", i), err)
		}
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

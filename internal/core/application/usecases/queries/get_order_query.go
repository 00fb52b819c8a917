// Package queries contains read-side operations in the CQRS architecture.
// Handlers read the database directly with raw SQL and return flat response
// models; they never load aggregates or mutate state.
package queries

import (
	"errors"
	"time"

	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items and, optionally, its
// approval history.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	includeHistory bool

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderID kernel.UUID, includeHistory bool) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	return GetOrderQuery{
		orderID:        orderID,
		includeHistory: includeHistory,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// IncludeHistory reports whether the approval trail should be attached.
func (q GetOrderQuery) IncludeHistory() bool {
	return q.includeHistory
}

// LineItemResponse is one order line in a read model.
type LineItemResponse struct {
	VariantID      kernel.UUID     `json:"variant_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	AgentRefPrice  decimal.Decimal `json:"agent_ref_price"`
	LeaderRefPrice decimal.Decimal `json:"leader_ref_price"`
}

// ApprovalEventResponse is one approval trail entry in a read model.
type ApprovalEventResponse struct {
	ID          kernel.UUID       `json:"id"`
	OrderID     kernel.UUID       `json:"order_id"`
	ActorID     kernel.UUID       `json:"actor_id"`
	ActorRole   string            `json:"actor_role"`
	Action      string            `json:"action"`
	StageBefore string            `json:"stage_before,omitempty"`
	StageAfter  string            `json:"stage_after"`
	StockDiffs  []audit.StockDiff `json:"stock_diffs"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// GetOrderQueryResponse is the full order read model.
type GetOrderQueryResponse struct {
	ID              kernel.UUID             `json:"id"`
	Number          string                  `json:"number"`
	AgentID         kernel.UUID             `json:"agent_id"`
	ClientID        kernel.UUID             `json:"client_id"`
	AccountType     string                  `json:"account_type,omitempty"`
	LeaderID        *kernel.UUID            `json:"leader_id,omitempty"`
	Stage           string                  `json:"stage"`
	Items           []LineItemResponse      `json:"items"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	Tax             decimal.Decimal         `json:"tax"`
	Discount        decimal.Decimal         `json:"discount"`
	Total           decimal.Decimal         `json:"total"`
	PaymentMethod   string                  `json:"payment_method,omitempty"`
	PaymentProofRef string                  `json:"payment_proof_ref,omitempty"`
	SignatureRef    string                  `json:"signature_ref,omitempty"`
	Notes           string                  `json:"notes,omitempty"`
	RejectionReason string                  `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
	History         []ApprovalEventResponse `json:"history,omitempty"`
}

package queries

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

var ErrGetApprovalHistoryQueryIsNotConstructed = errors.New(
	"GetApprovalHistoryQuery must be created via NewGetApprovalHistoryQuery constructor",
)

// GetApprovalHistoryQuery retrieves the full approval trail of one order in
// occurrence order.
type GetApprovalHistoryQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetApprovalHistoryQuery creates a query for an order's approval trail.
func NewGetApprovalHistoryQuery(orderID kernel.UUID) (GetApprovalHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetApprovalHistoryQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	return GetApprovalHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetApprovalHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetApprovalHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose trail is requested.
func (q GetApprovalHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

package queries

import (
	"errors"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrdersByStageQueryIsNotConstructed = errors.New(
	"GetOrdersByStageQuery must be created via NewGetOrdersByStageQuery constructor",
)

// GetOrdersByStageQuery retrieves the review queue for one stage, optionally
// narrowed to a single agent. Leaders read the agent_pending queue, admins
// the leader_approved one.
type GetOrdersByStageQuery struct { //nolint:recvcheck //using for validation
	stage   order.Stage
	agentID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersByStageQuery creates a query for a stage queue. agentID is
// optional; pass nil to list across all agents.
func NewGetOrdersByStageQuery(stage order.Stage, agentID *kernel.UUID) (GetOrdersByStageQuery, error) {
	if err := stage.Validate(); err != nil {
		return GetOrdersByStageQuery{}, err
	}

	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return GetOrdersByStageQuery{}, errs.NewValueIsRequiredErrorWithCause("agentID", err)
		}
	}

	return GetOrdersByStageQuery{
		stage:   stage,
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByStageQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStageQueryIsNotConstructed)
}

// Stage returns the stage whose queue is requested.
func (q GetOrdersByStageQuery) Stage() order.Stage {
	return q.stage
}

// AgentID returns the optional agent filter.
func (q GetOrdersByStageQuery) AgentID() *kernel.UUID {
	return q.agentID
}

// GetOrdersByStageQueryResponse is one row of a stage queue listing.
type GetOrdersByStageQueryResponse struct {
	ID        kernel.UUID     `json:"id"`
	Number    string          `json:"number"`
	AgentID   kernel.UUID     `json:"agent_id"`
	ClientID  kernel.UUID     `json:"client_id"`
	Stage     string          `json:"stage"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

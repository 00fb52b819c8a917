package ports

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Line items
	// are immutable after creation and are not rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its line items. Within a unit of work the load must lock the order
	// row until the transaction ends, so that concurrent transitions of
	// the same order execute one at a time and each one asserts its stage
	// precondition against the latest committed state.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByAgentInStage retrieves all of an agent's orders currently in the
	// given stage, in creation order. Used by the bulk approval coordinator
	// to select eligible orders.
	GetByAgentInStage(ctx context.Context, agentID kernel.UUID, stage order.Stage) ([]*order.Order, error)
}

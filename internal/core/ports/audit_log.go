package ports

import (
	"context"

	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/kernel"
)

// AuditLog is the append-only store of approval events. There is
// intentionally no update or delete: the trail is immutable.
type AuditLog interface {
	// Append persists one approval event.
	Append(ctx context.Context, event *audit.ApprovalEvent) error

	// ListByOrder retrieves all events for an order in occurrence order.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*audit.ApprovalEvent, error)
}

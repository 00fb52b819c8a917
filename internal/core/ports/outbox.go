package ports

import (
	"context"
	"encoding/json"
	"time"

	"distribution/internal/core/domain/model/kernel"
)

// Notification is one pending post-commit message. It is written in the same
// transaction as the transition it announces, then delivered asynchronously
// by the outbox dispatch job. Delivery failure never unwinds the committed
// transition; the job simply retries on its next tick.
type Notification struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	EventType   string
	Payload     json.RawMessage
	OccurredAt  time.Time
	PublishedAt *time.Time
}

// NotificationOutbox enqueues notifications within the current unit of work.
type NotificationOutbox interface {
	Enqueue(ctx context.Context, notification Notification) error
}

// OutboxReader is used by the dispatch job to drain the outbox.
type OutboxReader interface {
	// FetchUnpublished returns up to limit notifications that have not been
	// delivered yet, oldest first.
	FetchUnpublished(ctx context.Context, limit int) ([]Notification, error)

	// MarkPublished stamps a notification as delivered so it is not
	// fetched again.
	MarkPublished(ctx context.Context, id kernel.UUID) error
}

// NotificationPublisher delivers a notification to the outside world.
// Implementations are best-effort; a returned error leaves the notification
// unpublished for a later retry.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification Notification) error
}

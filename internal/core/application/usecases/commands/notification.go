package commands

import (
	"encoding/json"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/ports"
)

// Event types published to downstream consumers after each transition.
const (
	EventOrderCreated        = "OrderCreated"
	EventOrderLeaderApproved = "OrderLeaderApproved"
	EventOrderLeaderRejected = "OrderLeaderRejected"
	EventOrderAdminApproved  = "OrderAdminApproved"
	EventOrderAdminRejected  = "OrderAdminRejected"
)

type orderEventPayload struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Stage       string    `json:"stage"`
	ActorID     string    `json:"actor_id"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// newOrderNotification builds the outbox entry for a transition that just
// happened on the given order. The payload is a self-contained snapshot so
// consumers never have to call back into this service.
func newOrderNotification(eventType string, o *order.Order, actorID kernel.UUID) (ports.Notification, error) {
	now := time.Now().UTC()

	payload, err := json.Marshal(orderEventPayload{
		OrderID:     o.ID().String(),
		OrderNumber: o.Number(),
		Stage:       o.Stage().String(),
		ActorID:     actorID.String(),
		Reason:      o.RejectionReason(),
		OccurredAt:  now,
	})
	if err != nil {
		return ports.Notification{}, err
	}

	return ports.Notification{
		ID:         kernel.NewUUID(),
		OrderID:    o.ID(),
		EventType:  eventType,
		Payload:    payload,
		OccurredAt: now,
	}, nil
}

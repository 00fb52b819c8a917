// Package outboxrepo persists pending notifications. Rows are written in
// the same transaction as the transition they announce and drained
// asynchronously by the dispatch job.
package outboxrepo

import (
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/ports"

	"github.com/google/uuid"
)

// NotificationDTO represents one outbox row.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	EventType   string
	Payload     []byte     `gorm:"type:jsonb"`
	OccurredAt  time.Time
	PublishedAt *time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "notifications_outbox".
func (NotificationDTO) TableName() string {
	return "notifications_outbox"
}

func fromDomain(notification ports.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          notification.ID.Bytes(),
		OrderID:     notification.OrderID.Bytes(),
		EventType:   notification.EventType,
		Payload:     notification.Payload,
		OccurredAt:  notification.OccurredAt,
		PublishedAt: notification.PublishedAt,
	}
}

func toDomain(dto NotificationDTO) (ports.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Notification{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.Notification{}, err
	}

	return ports.Notification{
		ID:          id,
		OrderID:     orderID,
		EventType:   dto.EventType,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
		PublishedAt: dto.PublishedAt,
	}, nil
}

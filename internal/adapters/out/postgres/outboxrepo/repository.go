package outboxrepo

import (
	"context"
	"time"

	"distribution/internal/adapters/out/postgres/pgerrors"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/ports"

	"gorm.io/gorm"
)

// GormOutbox implements both ports.NotificationOutbox (the transactional
// write side) and ports.OutboxReader (the dispatch job's drain side).
type GormOutbox struct {
	db *gorm.DB
}

// NewGormOutbox creates a new GORM outbox store.
func NewGormOutbox(db *gorm.DB) *GormOutbox {
	return &GormOutbox{db: db}
}

// Enqueue persists a pending notification within the current transaction.
func (r *GormOutbox) Enqueue(ctx context.Context, notification ports.Notification) error {
	if err := notification.ID.Validate(); err != nil {
		return err
	}
	if err := notification.OrderID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(notification)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrors.Translate(err)
	}

	return nil
}

// FetchUnpublished returns up to limit undelivered notifications, oldest
// first, so consumers observe transitions in order.
func (r *GormOutbox) FetchUnpublished(ctx context.Context, limit int) ([]ports.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerrors.Translate(err)
	}

	notifications := make([]ports.Notification, 0, len(dtos))
	for _, dto := range dtos {
		notification, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		notifications = append(notifications, notification)
	}

	return notifications, nil
}

// MarkPublished stamps a notification as delivered.
func (r *GormOutbox) MarkPublished(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ? AND published_at IS NULL", id.Bytes()).
		Update("published_at", now)
	if result.Error != nil {
		return pgerrors.Translate(result.Error)
	}

	return nil
}

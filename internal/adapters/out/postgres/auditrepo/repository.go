package auditrepo

import (
	"context"

	"distribution/internal/adapters/out/postgres/pgerrors"
	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAuditLog implements ports.AuditLog using GORM.
type GormAuditLog struct {
	db *gorm.DB
}

// NewGormAuditLog creates a new GORM approval trail store.
func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

// Append persists one approval event.
func (r *GormAuditLog) Append(ctx context.Context, event *audit.ApprovalEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(event)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrors.Translate(err)
	}

	return nil
}

// ListByOrder retrieves all events for an order in occurrence order.
func (r *GormAuditLog) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*audit.ApprovalEvent, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerrors.Translate(err)
	}

	events := make([]*audit.ApprovalEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		events = append(events, event)
	}

	return events, nil
}

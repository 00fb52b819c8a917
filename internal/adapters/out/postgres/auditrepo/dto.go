// Package auditrepo persists the approval trail. Events are append-only;
// the repository exposes no update or delete path.
package auditrepo

import (
	"encoding/json"
	"time"

	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// EventDTO represents one persisted approval event. Stock diffs are stored
// as a JSONB document since they are only ever read back whole.
type EventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ActorID     uuid.UUID `gorm:"type:uuid"`
	ActorRole   int
	Action      int
	StageBefore int
	StageAfter  int
	StockDiffs  []byte    `gorm:"type:jsonb"`
	OccurredAt  time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "approval_events".
func (EventDTO) TableName() string {
	return "approval_events"
}

func fromDomain(event *audit.ApprovalEvent) (EventDTO, error) {
	diffs, err := json.Marshal(event.StockDiffs())
	if err != nil {
		return EventDTO{}, err
	}

	return EventDTO{
		ID:          event.ID().Bytes(),
		OrderID:     event.OrderID().Bytes(),
		ActorID:     event.ActorID().Bytes(),
		ActorRole:   int(event.ActorRole()),
		Action:      int(event.Action()),
		StageBefore: int(event.StageBefore()),
		StageAfter:  int(event.StageAfter()),
		StockDiffs:  diffs,
		OccurredAt:  event.OccurredAt(),
	}, nil
}

func toDomain(dto EventDTO) (*audit.ApprovalEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	var diffs []audit.StockDiff
	if len(dto.StockDiffs) > 0 {
		if err = json.Unmarshal(dto.StockDiffs, &diffs); err != nil {
			return nil, err
		}
	}

	return audit.RestoreApprovalEvent(
		id,
		orderID,
		actorID,
		audit.Role(dto.ActorRole),
		audit.Action(dto.Action),
		order.Stage(dto.StageBefore),
		order.Stage(dto.StageAfter),
		diffs,
		dto.OccurredAt,
	)
}

package queries

import (
	"context"
	"encoding/json"

	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetApprovalHistoryQueryHandler reads the approval trail of one order.
type GetApprovalHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetApprovalHistoryQueryHandler creates a handler for approval trail queries.
func NewGetApprovalHistoryQueryHandler(db *gorm.DB) GetApprovalHistoryQueryHandler {
	return GetApprovalHistoryQueryHandler{db: db}
}

// Handle executes the trail query. An order with no recorded events yields
// an empty slice, not an error; existence checks belong to the order lookup.
func (h GetApprovalHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetApprovalHistoryQuery,
) ([]ApprovalEventResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return loadApprovalHistory(ctx, h.db, query.OrderID())
}

func loadApprovalHistory(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]ApprovalEventResponse, error) {
	events := make([]ApprovalEventResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			actor_id,
			actor_role,
			action,
			stage_before,
			stage_after,
			stock_diffs,
			occurred_at
		FROM approval_events
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event ApprovalEventResponse
		var id, rowOrderID, actorID uuid.UUID
		var actorRole, action, stageBefore, stageAfter int
		var stockDiffs []byte

		err = rows.Scan(
			&id,
			&rowOrderID,
			&actorID,
			&actorRole,
			&action,
			&stageBefore,
			&stageAfter,
			&stockDiffs,
			&event.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		event.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		event.OrderID, err = kernel.UUIDFromBytes(rowOrderID[:])
		if err != nil {
			return nil, err
		}

		event.ActorID, err = kernel.UUIDFromBytes(actorID[:])
		if err != nil {
			return nil, err
		}

		event.ActorRole = audit.Role(actorRole).String()
		event.Action = audit.Action(action).String()
		event.StageAfter = order.Stage(stageAfter).String()

		// Creation events have no before-stage.
		if before := order.Stage(stageBefore); before != order.StageUnknown {
			event.StageBefore = before.String()
		}

		if len(stockDiffs) > 0 {
			if err = json.Unmarshal(stockDiffs, &event.StockDiffs); err != nil {
				return nil, err
			}
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

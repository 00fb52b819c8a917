package queries

import (
	"context"

	"distribution/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersByStageQueryHandler lists orders sitting in one stage, oldest
// first, so reviewers work the queue in submission order.
type GetOrdersByStageQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStageQueryHandler creates a handler for stage queue queries.
func NewGetOrdersByStageQueryHandler(db *gorm.DB) GetOrdersByStageQueryHandler {
	return GetOrdersByStageQueryHandler{db: db}
}

// Handle executes the queue listing.
func (h GetOrdersByStageQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStageQuery,
) ([]GetOrdersByStageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			number,
			agent_id,
			client_id,
			total,
			created_at
		FROM orders
		WHERE stage = ?
	`
	args := []any{int(query.Stage())}

	if query.AgentID() != nil {
		sql += ` AND agent_id = ?`
		args = append(args, query.AgentID().String())
	}

	sql += ` ORDER BY created_at, number`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersByStageQueryResponse, 0)

	for rows.Next() {
		var row GetOrdersByStageQueryResponse
		var id, agentID, clientID uuid.UUID

		err = rows.Scan(
			&id,
			&row.Number,
			&agentID,
			&clientID,
			&row.Total,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		row.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		row.AgentID, err = kernel.UUIDFromBytes(agentID[:])
		if err != nil {
			return nil, err
		}

		row.ClientID, err = kernel.UUIDFromBytes(clientID[:])
		if err != nil {
			return nil, err
		}

		row.Stage = query.Stage().String()
		orders = append(orders, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

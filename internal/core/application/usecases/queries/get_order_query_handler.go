package queries

import (
	"context"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderCache is a read-through cache for single-order lookups. Implemented
// by the Redis adapter; both methods are best-effort and a failure simply
// routes the read to the database.
type OrderCache interface {
	// Get returns the cached response for an order, or nil on a miss.
	Get(ctx context.Context, orderID kernel.UUID) (*GetOrderQueryResponse, error)

	// Set stores a response. Entries are invalidated by the outbox
	// dispatch job whenever the order transitions.
	Set(ctx context.Context, response GetOrderQueryResponse) error
}

// GetOrderQueryHandler retrieves one order read model. Plain lookups are
// served from the cache when possible; history-expanded lookups always go to
// the database.
type GetOrderQueryHandler struct {
	db    *gorm.DB
	cache OrderCache
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// cache may be nil, which disables caching entirely.
func NewGetOrderQueryHandler(db *gorm.DB, cache OrderCache) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, cache: cache}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no order
// has the given identifier.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if h.cache != nil && !query.IncludeHistory() {
		if cached, err := h.cache.Get(ctx, query.OrderID()); err == nil && cached != nil {
			return *cached, nil
		}
	}

	response, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.Items, err = h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if query.IncludeHistory() {
		response.History, err = loadApprovalHistory(ctx, h.db, query.OrderID())
		if err != nil {
			return GetOrderQueryResponse{}, err
		}
		return response, nil
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, response)
	}

	return response, nil
}

func (h GetOrderQueryHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	var response GetOrderQueryResponse

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			agent_id,
			client_id,
			account_type,
			leader_id,
			stage,
			subtotal,
			tax,
			discount,
			total,
			payment_method,
			payment_proof_ref,
			signature_ref,
			notes,
			rejection_reason,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.String()).Rows()
	if err != nil {
		return response, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return response, err
		}
		return response, errs.NewObjectNotFoundError("orderID", orderID)
	}

	var id, agentID, clientID uuid.UUID
	var leaderID uuid.NullUUID
	var stage int

	err = rows.Scan(
		&id,
		&response.Number,
		&agentID,
		&clientID,
		&response.AccountType,
		&leaderID,
		&stage,
		&response.Subtotal,
		&response.Tax,
		&response.Discount,
		&response.Total,
		&response.PaymentMethod,
		&response.PaymentProofRef,
		&response.SignatureRef,
		&response.Notes,
		&response.RejectionReason,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if err != nil {
		return response, err
	}

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return response, err
	}

	response.AgentID, err = kernel.UUIDFromBytes(agentID[:])
	if err != nil {
		return response, err
	}

	response.ClientID, err = kernel.UUIDFromBytes(clientID[:])
	if err != nil {
		return response, err
	}

	if leaderID.Valid {
		leader, idErr := kernel.UUIDFromBytes(leaderID.UUID[:])
		if idErr != nil {
			return response, idErr
		}
		response.LeaderID = &leader
	}

	response.Stage = order.Stage(stage).String()

	return response, rows.Err()
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]LineItemResponse, error) {
	items := make([]LineItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			variant_id,
			quantity,
			unit_price,
			agent_ref_price,
			leader_ref_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY variant_id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item LineItemResponse
		var variantID uuid.UUID

		err = rows.Scan(
			&variantID,
			&item.Quantity,
			&item.UnitPrice,
			&item.AgentRefPrice,
			&item.LeaderRefPrice,
		)
		if err != nil {
			return nil, err
		}

		item.VariantID, err = kernel.UUIDFromBytes(variantID[:])
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

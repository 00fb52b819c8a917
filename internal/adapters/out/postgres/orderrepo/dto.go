// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order
// aggregates, indexed for queue listings by agent and stage.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number          string     `gorm:"uniqueIndex"`
	AgentID         uuid.UUID  `gorm:"type:uuid;index:idx_orders_agent_stage"`
	ClientID        uuid.UUID  `gorm:"type:uuid;index"`
	AccountType     string
	LeaderID        *uuid.UUID `gorm:"type:uuid;index"`
	Stage           int        `gorm:"index:idx_orders_agent_stage"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(14,2)"`
	Tax             decimal.Decimal `gorm:"type:numeric(14,2)"`
	Discount        decimal.Decimal `gorm:"type:numeric(14,2)"`
	Total           decimal.Decimal `gorm:"type:numeric(14,2)"`
	PaymentMethod   string
	PaymentProofRef string
	SignatureRef    string
	Notes           string
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted order line. Lines are written once
// at creation and never updated.
type OrderItemDTO struct {
	OrderID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VariantID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Quantity       int
	UnitPrice      decimal.Decimal `gorm:"type:numeric(14,2)"`
	AgentRefPrice  decimal.Decimal `gorm:"type:numeric(14,2)"`
	LeaderRefPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var leaderID *uuid.UUID
	if id := aggregate.LeaderID(); id != nil {
		raw := id.Bytes()
		leaderID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:        aggregate.ID().Bytes(),
			VariantID:      item.VariantID().Bytes(),
			Quantity:       item.Quantity(),
			UnitPrice:      item.UnitPrice(),
			AgentRefPrice:  item.AgentRefPrice(),
			LeaderRefPrice: item.LeaderRefPrice(),
		})
	}

	totals := aggregate.Totals()
	payment := aggregate.Payment()

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		Number:          aggregate.Number(),
		AgentID:         aggregate.AgentID().Bytes(),
		ClientID:        aggregate.ClientID().Bytes(),
		AccountType:     aggregate.AccountType(),
		LeaderID:        leaderID,
		Stage:           int(aggregate.Stage()),
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Discount:        totals.Discount,
		Total:           totals.Total,
		PaymentMethod:   payment.Method,
		PaymentProofRef: payment.ProofRef,
		SignatureRef:    aggregate.SignatureRef(),
		Notes:           aggregate.Notes(),
		RejectionReason: aggregate.RejectionReason(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		Items:           items,
	}
}

// toDomain reconstructs the aggregate from its database rows using
// RestoreOrder, which re-validates stage and leader consistency.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	agentID, err := kernel.UUIDFromBytes(dto.AgentID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var leaderID *kernel.UUID
	if dto.LeaderID != nil {
		lID, leaderErr := kernel.UUIDFromBytes((*dto.LeaderID)[:])
		if leaderErr != nil {
			return nil, leaderErr
		}
		leaderID = &lID
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		variantID, itemErr := kernel.UUIDFromBytes(itemDTO.VariantID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(
			variantID,
			itemDTO.Quantity,
			itemDTO.UnitPrice,
			itemDTO.AgentRefPrice,
			itemDTO.LeaderRefPrice,
		)
		if itemErr != nil {
			return nil, itemErr
		}

		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		agentID,
		clientID,
		dto.AccountType,
		leaderID,
		items,
		order.Stage(dto.Stage),
		order.Totals{
			Subtotal: dto.Subtotal,
			Tax:      dto.Tax,
			Discount: dto.Discount,
			Total:    dto.Total,
		},
		order.PaymentInfo{
			Method:   dto.PaymentMethod,
			ProofRef: dto.PaymentProofRef,
		},
		dto.SignatureRef,
		dto.Notes,
		dto.RejectionReason,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

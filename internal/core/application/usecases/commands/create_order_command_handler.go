package commands

import (
	"context"

	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Issues a sequential order number, snapshots client identity and reference
// prices, reserves agent-tier stock for every line, and records the creation
// in the approval trail. The order starts in the agent_pending stage.
type CreateOrderCommandHandler struct {
	uowFactory ApprovalUoWFactory
	sequence   ports.OrderNumberSequence
	clients    ports.ClientDirectory
	prices     ports.PriceList
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory ApprovalUoWFactory,
	sequence ports.OrderNumberSequence,
	clients ports.ClientDirectory,
	prices ports.PriceList,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		sequence:   sequence,
		clients:    clients,
		prices:     prices,
	}
}

// Handle processes the order creation command and returns the issued order
// number. The agent-tier reservation and the order row commit atomically:
// if any line lacks stock the whole creation fails and nothing is reserved.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	// Client directory and price list are external and best-effort: on
	// failure the order is created with an empty account type, and the
	// submitted unit price stands in for the reference prices.
	accountType := ""
	if profile, err := h.clients.GetClient(ctx, cmd.ClientID()); err == nil {
		accountType = profile.AccountType
	}

	items := make([]order.LineItem, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		agentRef, leaderRef := input.UnitPrice, input.UnitPrice
		if pricing, err := h.prices.GetPricing(ctx, input.VariantID); err == nil {
			agentRef, leaderRef = pricing.AgentRefPrice, pricing.LeaderRefPrice
		}

		item, err := order.NewLineItem(input.VariantID, input.Quantity, input.UnitPrice, agentRef, leaderRef)
		if err != nil {
			return "", err
		}
		items = append(items, item)
	}

	number, err := h.sequence.Next(ctx)
	if err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	diffs, err := reserveItems(ctx, uow.InventoryLedger(), inventory.TierAgent, cmd.AgentID(), items)
	if err != nil {
		return "", err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		number,
		cmd.AgentID(),
		cmd.ClientID(),
		accountType,
		items,
		cmd.Totals(),
		cmd.Payment(),
		cmd.SignatureRef(),
		cmd.Notes(),
	)
	if err != nil {
		return "", err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return "", err
	}

	event, err := audit.NewApprovalEvent(
		kernel.NewUUID(),
		newOrder.ID(),
		cmd.AgentID(),
		audit.RoleAgent,
		audit.ActionCreate,
		order.StageUnknown,
		newOrder.Stage(),
		diffs,
	)
	if err != nil {
		return "", err
	}

	if err = uow.AuditLog().Append(ctx, event); err != nil {
		return "", err
	}

	notification, err := newOrderNotification(EventOrderCreated, newOrder, cmd.AgentID())
	if err != nil {
		return "", err
	}

	if err = uow.NotificationOutbox().Enqueue(ctx, notification); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return number, nil
}

package commands

import (
	"context"

	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/ports"

	"github.com/shopspring/decimal"
)

// AdminApproveCommandHandler settles a leader-approved order: it debits the
// main warehouse tier for every line, re-derives the final totals from the
// current price list, and locks them into the order. After this transition
// the order's monetary fields are authoritative and never change again.
type AdminApproveCommandHandler struct {
	uowFactory  ApprovalUoWFactory
	prices      ports.PriceList
	warehouseID kernel.UUID
}

// NewAdminApproveCommandHandler creates a handler for admin settlement
// operations. warehouseID identifies the main-tier ledger owner that all
// settlements draw from.
func NewAdminApproveCommandHandler(
	uowFactory ApprovalUoWFactory,
	prices ports.PriceList,
	warehouseID kernel.UUID,
) AdminApproveCommandHandler {
	return AdminApproveCommandHandler{
		uowFactory:  uowFactory,
		prices:      prices,
		warehouseID: warehouseID,
	}
}

// Handle processes the admin settlement command. Fails with an
// InvalidTransitionError if the order is not in leader_approved, or with an
// InsufficientStockError if the main warehouse cannot cover any line.
func (h AdminApproveCommandHandler) Handle(ctx context.Context, cmd AdminApproveCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	approved, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	stageBefore := approved.Stage()
	if err = approved.AdminApprove(h.finalTotals(ctx, approved)); err != nil {
		return err
	}

	diffs, err := reserveItems(ctx, uow.InventoryLedger(), inventory.TierMain, h.warehouseID, approved.Items())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, approved); err != nil {
		return err
	}

	event, err := audit.NewApprovalEvent(
		kernel.NewUUID(),
		approved.ID(),
		cmd.AdminID(),
		audit.RoleAdmin,
		audit.ActionAdminApprove,
		stageBefore,
		approved.Stage(),
		diffs,
	)
	if err != nil {
		return err
	}

	if err = uow.AuditLog().Append(ctx, event); err != nil {
		return err
	}

	notification, err := newOrderNotification(EventOrderAdminApproved, approved, cmd.AdminID())
	if err != nil {
		return err
	}

	if err = uow.NotificationOutbox().Enqueue(ctx, notification); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// finalTotals recomputes the subtotal from current master pricing, keeping
// the tax and discount captured at creation. The price list is best-effort:
// if any lookup fails, the creation-time snapshot is locked in unchanged.
func (h AdminApproveCommandHandler) finalTotals(ctx context.Context, o *order.Order) order.Totals {
	snapshot := o.Totals()

	subtotal := decimal.Zero
	for _, item := range o.Items() {
		pricing, err := h.prices.GetPricing(ctx, item.VariantID())
		if err != nil {
			return snapshot
		}
		subtotal = subtotal.Add(pricing.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity()))))
	}

	return order.Totals{
		Subtotal: subtotal,
		Tax:      snapshot.Tax,
		Discount: snapshot.Discount,
		Total:    subtotal.Add(snapshot.Tax).Sub(snapshot.Discount),
	}
}

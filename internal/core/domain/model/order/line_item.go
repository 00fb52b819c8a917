package order

import (
	"errors"
	"fmt"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created
// through the NewLineItem factory function.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is a value object describing one product variant position on an
// order. Prices are captured at order-creation time and are immutable: they
// are a snapshot, never recomputed from the current price list.
//
// The tier reference prices record what the variant cost at the agent and
// leader tiers when the order was placed, so later reporting is insulated
// from price-list changes.
type LineItem struct { //nolint:recvcheck //using for validation
	variantID      kernel.UUID
	quantity       int
	unitPrice      decimal.Decimal
	agentRefPrice  decimal.Decimal
	leaderRefPrice decimal.Decimal

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item snapshot. Quantity must be positive and
// all prices non-negative.
func NewLineItem(
	variantID kernel.UUID,
	quantity int,
	unitPrice, agentRefPrice, leaderRefPrice decimal.Decimal,
) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setVariantID(variantID),
		item.setQuantity(quantity),
		item.setPrices(unitPrice, agentRefPrice, leaderRefPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the line item was created through the constructor.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// VariantID returns the product variant the item references.
func (li LineItem) VariantID() kernel.UUID {
	return li.variantID
}

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the client-facing unit price captured at creation.
func (li LineItem) UnitPrice() decimal.Decimal {
	return li.unitPrice
}

// AgentRefPrice returns the agent-tier reference price captured at creation.
func (li LineItem) AgentRefPrice() decimal.Decimal {
	return li.agentRefPrice
}

// LeaderRefPrice returns the leader-tier reference price captured at creation.
func (li LineItem) LeaderRefPrice() decimal.Decimal {
	return li.leaderRefPrice
}

// Subtotal returns quantity times unit price.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.unitPrice.Mul(decimal.NewFromInt(int64(li.quantity)))
}

func (li *LineItem) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}
	li.variantID = variantID
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setPrices(unitPrice, agentRefPrice, leaderRefPrice decimal.Decimal) error {
	for name, price := range map[string]decimal.Decimal{
		"unitPrice":      unitPrice,
		"agentRefPrice":  agentRefPrice,
		"leaderRefPrice": leaderRefPrice,
	} {
		if price.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(name+" is invalid", fmt.Errorf("%s is negative", price))
		}
	}

	li.unitPrice = unitPrice
	li.agentRefPrice = agentRefPrice
	li.leaderRefPrice = leaderRefPrice
	return nil
}

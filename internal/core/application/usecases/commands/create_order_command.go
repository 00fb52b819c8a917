package commands

import (
	"errors"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLineItemsAreRequired = errors.New("at least one line item is required")
)

// LineItemInput is one requested order line as submitted by the agent.
// Reference prices are not part of the input; the handler snapshots them
// from the price list.
type LineItemInput struct {
	VariantID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderCommand represents an agent's request to register a new sales
// order. Monetary totals are computed upstream and carried through as-is.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, agentID, clientID, items, totals, payment, "", "urgent")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, sequence, clients, prices)
//	number, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s registered and awaiting leader review", number)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	agentID      kernel.UUID
	clientID     kernel.UUID
	items        []LineItemInput
	totals       order.Totals
	payment      order.PaymentInfo
	signatureRef string
	notes        string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new sales order.
// Validates that all identifiers are valid, that there is at least one line
// item, and that every line has a positive quantity and non-negative price.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	agentID kernel.UUID,
	clientID kernel.UUID,
	items []LineItemInput,
	totals order.Totals,
	payment order.PaymentInfo,
	signatureRef string,
	notes string,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		totals:       totals,
		payment:      payment,
		signatureRef: signatureRef,
		notes:        notes,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setAgentID(agentID),
		command.setClientID(clientID),
		command.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the identifier of the agent creating the order.
func (c CreateOrderCommand) AgentID() kernel.UUID {
	return c.agentID
}

// ClientID returns the identifier of the client the order is for.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []LineItemInput {
	return c.items
}

// Totals returns the upstream-computed monetary totals.
func (c CreateOrderCommand) Totals() order.Totals {
	return c.totals
}

// Payment returns the payment method and proof reference.
func (c CreateOrderCommand) Payment() order.PaymentInfo {
	return c.payment
}

// SignatureRef returns the client signature document reference.
func (c CreateOrderCommand) SignatureRef() string {
	return c.signatureRef
}

// Notes returns free-form notes attached by the agent.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agentID", err)
	}

	c.agentID = agentID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientID", err)
	}

	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setItems(items []LineItemInput) error {
	if len(items) == 0 {
		return ErrLineItemsAreRequired
	}

	for _, item := range items {
		if err := item.VariantID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("variantID", err)
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidError("quantity")
		}
		if item.UnitPrice.IsNegative() {
			return errs.NewValueIsInvalidError("unitPrice")
		}
	}

	c.items = items
	return nil
}

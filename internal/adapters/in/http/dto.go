package http

import (
	"github.com/shopspring/decimal"
)

// LineItemRequest is one order line in a creation request.
type LineItemRequest struct {
	VariantID string          `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// TotalsRequest carries the money snapshot computed on the agent's device.
type TotalsRequest struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// PaymentRequest carries the payment method and proof reference.
type PaymentRequest struct {
	Method   string `json:"method"`
	ProofRef string `json:"proof_ref"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	AgentID      string            `json:"agent_id"`
	ClientID     string            `json:"client_id"`
	Items        []LineItemRequest `json:"items"`
	Totals       TotalsRequest     `json:"totals"`
	Payment      PaymentRequest    `json:"payment"`
	SignatureRef string            `json:"signature_ref"`
	Notes        string            `json:"notes"`
}

// CreateOrderResponse confirms registration of a new order.
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
	Number  string `json:"number"`
}

// ApproveRequest is the body of the leader and admin approval endpoints.
type ApproveRequest struct {
	ActorID string `json:"actor_id"`
}

// RejectRequest is the body of the leader and admin rejection endpoints.
// Reason is optional for leader rejections and required for admin ones.
type RejectRequest struct {
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason"`
}

// BulkApproveRequest is the body of POST /api/v1/orders/bulk-approve.
type BulkApproveRequest struct {
	AgentID     string `json:"agent_id"`
	ActorID     string `json:"actor_id"`
	TargetStage string `json:"target_stage"`
}

// BulkFailureResponse reports one order a bulk sweep could not advance.
type BulkFailureResponse struct {
	OrderID string `json:"order_id"`
	Error   string `json:"error"`
}

// BulkApproveResponse summarizes the outcome of a bulk sweep.
type BulkApproveResponse struct {
	Succeeded []string              `json:"succeeded"`
	Failed    []BulkFailureResponse `json:"failed"`
}

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

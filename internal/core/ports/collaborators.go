package ports

import (
	"context"

	"distribution/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ClientProfile is the slice of client identity the order core snapshots at
// creation time.
type ClientProfile struct {
	ID          kernel.UUID
	AccountType string
}

// ClientDirectory looks up client identity. It belongs to an external
// system; callers treat it as best-effort and fall back to an empty snapshot
// when it fails.
type ClientDirectory interface {
	GetClient(ctx context.Context, clientID kernel.UUID) (ClientProfile, error)
}

// VariantPricing carries the price-list entry for one product variant.
type VariantPricing struct {
	VariantID      kernel.UUID
	UnitPrice      decimal.Decimal
	AgentRefPrice  decimal.Decimal
	LeaderRefPrice decimal.Decimal
}

// PriceList looks up current master pricing. Used twice in an order's life:
// at creation to snapshot reference prices, and at admin approval to derive
// the final totals. Both callers treat it as best-effort: when the lookup
// fails, the create-time snapshot stands.
type PriceList interface {
	GetPricing(ctx context.Context, variantID kernel.UUID) (VariantPricing, error)
}

package ports

import (
	"context"

	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
)

// InventoryLedger is the only gateway to stock mutation. Implementations
// must perform the availability check and the decrement as one atomic step
// scoped to the (tier, owner, variant) key, so that concurrent reserves
// against the same key serialize and overdraw is impossible.
//
// Both mutations return the stock level after the operation, which the
// orchestrator records in the audit trail.
type InventoryLedger interface {
	// Reserve atomically decrements stock by qty. Fails with
	// inventory.InsufficientStockError and no mutation if qty exceeds the
	// available stock, or errs.ObjectNotFoundError if the key has no record.
	Reserve(ctx context.Context, tier inventory.Tier, ownerID, variantID kernel.UUID, qty int) (int, error)

	// Release atomically increments stock by qty, undoing a prior
	// reservation. There is no upper bound check.
	Release(ctx context.Context, tier inventory.Tier, ownerID, variantID kernel.UUID, qty int) (int, error)

	// Get reads the current record for a ledger key.
	Get(ctx context.Context, tier inventory.Tier, ownerID, variantID kernel.UUID) (*inventory.Record, error)
}

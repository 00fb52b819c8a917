package commands

import (
	"context"

	"distribution/internal/core/domain/model/audit"
	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/core/ports"
)

// reserveItems decrements one ledger key per line item and collects the
// resulting stock diffs for the audit trail. The first failure aborts the
// loop; the caller's rollback undoes any decrements already applied, so a
// multi-line order reserves all lines or none.
func reserveItems(
	ctx context.Context,
	ledger ports.InventoryLedger,
	tier inventory.Tier,
	ownerID kernel.UUID,
	items []order.LineItem,
) ([]audit.StockDiff, error) {
	diffs := make([]audit.StockDiff, 0, len(items))
	for _, item := range items {
		after, err := ledger.Reserve(ctx, tier, ownerID, item.VariantID(), item.Quantity())
		if err != nil {
			return nil, err
		}

		diffs = append(diffs, audit.StockDiff{
			Tier:      tier,
			OwnerID:   ownerID,
			VariantID: item.VariantID(),
			Before:    after + item.Quantity(),
			After:     after,
		})
	}

	return diffs, nil
}

// releaseItems increments one ledger key per line item, undoing a prior
// reservation at that tier. Same all-or-nothing contract as reserveItems.
func releaseItems(
	ctx context.Context,
	ledger ports.InventoryLedger,
	tier inventory.Tier,
	ownerID kernel.UUID,
	items []order.LineItem,
) ([]audit.StockDiff, error) {
	diffs := make([]audit.StockDiff, 0, len(items))
	for _, item := range items {
		after, err := ledger.Release(ctx, tier, ownerID, item.VariantID(), item.Quantity())
		if err != nil {
			return nil, err
		}

		diffs = append(diffs, audit.StockDiff{
			Tier:      tier,
			OwnerID:   ownerID,
			VariantID: item.VariantID(),
			Before:    after - item.Quantity(),
			After:     after,
		})
	}

	return diffs, nil
}

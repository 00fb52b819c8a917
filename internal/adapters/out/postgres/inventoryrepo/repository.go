package inventoryrepo

import (
	"context"
	"database/sql"
	"errors"

	"distribution/internal/adapters/out/postgres/pgerrors"
	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryLedger implements ports.InventoryLedger using GORM.
type GormInventoryLedger struct {
	db *gorm.DB
}

// NewGormInventoryLedger creates a new GORM inventory ledger.
func NewGormInventoryLedger(db *gorm.DB) *GormInventoryLedger {
	return &GormInventoryLedger{db: db}
}

// Reserve atomically decrements stock by qty, returning the new level. The
// availability check rides in the UPDATE's WHERE clause: when stock is short
// no row matches, nothing mutates, and the follow-up read tells a missing
// key apart from an insufficient one.
func (l *GormInventoryLedger) Reserve(
	ctx context.Context,
	tier inventory.Tier,
	ownerID, variantID kernel.UUID,
	qty int,
) (int, error) {
	if err := l.validateKey(tier, ownerID, variantID, qty); err != nil {
		return 0, err
	}

	var stock int
	row := l.db.WithContext(ctx).Raw(`
		UPDATE inventory_records
		SET stock = stock - ?
		WHERE tier = ? AND owner_id = ? AND variant_id = ? AND stock >= ?
		RETURNING stock
	`, qty, int(tier), ownerID.Bytes(), variantID.Bytes(), qty).Row()

	err := row.Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, pgerrors.Translate(err)
	}

	// No row matched: either the key does not exist or stock is short.
	record, err := l.Get(ctx, tier, ownerID, variantID)
	if err != nil {
		return 0, err
	}

	return 0, inventory.NewInsufficientStockError(tier, variantID, record.Stock(), qty)
}

// Release atomically increments stock by qty, returning the new level.
// There is no upper bound: releasing restores what a reserve took.
func (l *GormInventoryLedger) Release(
	ctx context.Context,
	tier inventory.Tier,
	ownerID, variantID kernel.UUID,
	qty int,
) (int, error) {
	if err := l.validateKey(tier, ownerID, variantID, qty); err != nil {
		return 0, err
	}

	var stock int
	row := l.db.WithContext(ctx).Raw(`
		UPDATE inventory_records
		SET stock = stock + ?
		WHERE tier = ? AND owner_id = ? AND variant_id = ?
		RETURNING stock
	`, qty, int(tier), ownerID.Bytes(), variantID.Bytes()).Row()

	err := row.Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errs.NewObjectNotFoundError("inventory record", ledgerKey(tier, ownerID, variantID))
	}

	return 0, pgerrors.Translate(err)
}

// Get reads the current record for a ledger key.
func (l *GormInventoryLedger) Get(
	ctx context.Context,
	tier inventory.Tier,
	ownerID, variantID kernel.UUID,
) (*inventory.Record, error) {
	if err := tier.Validate(); err != nil {
		return nil, err
	}
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}
	if err := variantID.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	err := l.db.WithContext(ctx).
		First(&dto, "tier = ? AND owner_id = ? AND variant_id = ?", int(tier), ownerID.Bytes(), variantID.Bytes()).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory record", ledgerKey(tier, ownerID, variantID))
		}
		return nil, pgerrors.Translate(err)
	}

	return toDomain(dto)
}

func (l *GormInventoryLedger) validateKey(tier inventory.Tier, ownerID, variantID kernel.UUID, qty int) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	if err := ownerID.Validate(); err != nil {
		return err
	}
	if err := variantID.Validate(); err != nil {
		return err
	}
	if qty <= 0 {
		return errs.NewValueIsInvalidError("qty")
	}
	return nil
}

func ledgerKey(tier inventory.Tier, ownerID, variantID kernel.UUID) string {
	return tier.String() + "/" + ownerID.String() + "/" + variantID.String()
}

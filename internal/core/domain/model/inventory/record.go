package inventory

import (
	"errors"
	"fmt"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/pkg/errs"
	"distribution/internal/pkg/guard"
)

var (
	// ErrInsufficientStock is the sentinel wrapped by InsufficientStockError.
	// It marks a definitional business failure: the operation only becomes
	// retryable after stock changes, never by backing off.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrRecordIsNotConstructed is returned when a Record instance was not
	// created through NewRecord or RestoreRecord.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord constructor")
)

// InsufficientStockError reports a reserve that would overdraw a ledger
// record. It carries the available and required quantities so callers can
// surface an actionable message to the actor.
type InsufficientStockError struct {
	Tier      Tier
	VariantID kernel.UUID
	Available int
	Required  int
}

// NewInsufficientStockError creates an InsufficientStockError for one ledger key.
func NewInsufficientStockError(tier Tier, variantID kernel.UUID, available, required int) *InsufficientStockError {
	return &InsufficientStockError{
		Tier:      tier,
		VariantID: variantID,
		Available: available,
		Required:  required,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: %s tier has %d of variant %s, %d required",
		ErrInsufficientStock, e.Tier, e.Available, e.VariantID, e.Required)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Record is one row of the tiered stock ledger: how many units of a product
// variant a given owner holds at a given tier.
//
// Record enforces the ledger invariants in memory:
//   - stock is never negative;
//   - Reserve fails whole with InsufficientStockError when it would overdraw;
//   - Release has no upper bound (the state machine's 1:1 reserve/release
//     pairing is what keeps totals honest).
type Record struct {
	tier      Tier
	ownerID   kernel.UUID
	variantID kernel.UUID
	stock     int

	guard guard.ConstructorGuard
}

// NewRecord creates a ledger record with an initial stock level.
// Used by the allocation workflow and by tests; the order core itself only
// ever mutates existing records.
func NewRecord(tier Tier, ownerID, variantID kernel.UUID, stock int) (*Record, error) {
	if err := errors.Join(
		tier.Validate(),
		ownerID.Validate(),
		variantID.Validate(),
	); err != nil {
		return nil, err
	}

	if stock < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("stock is invalid", fmt.Errorf("%d is not greater than or equal to 0", stock))
	}

	return &Record{
		tier:      tier,
		ownerID:   ownerID,
		variantID: variantID,
		stock:     stock,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreRecord reconstructs a ledger record from persistence.
func RestoreRecord(tier Tier, ownerID, variantID kernel.UUID, stock int) (*Record, error) {
	return NewRecord(tier, ownerID, variantID, stock)
}

// Validate ensures the Record was created through a constructor.
func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

// Tier returns the ownership scope of the record.
func (r *Record) Tier() Tier {
	return r.tier
}

// OwnerID returns the owning agent, leader, or warehouse identifier.
func (r *Record) OwnerID() kernel.UUID {
	return r.ownerID
}

// VariantID returns the product variant the record tracks.
func (r *Record) VariantID() kernel.UUID {
	return r.variantID
}

// Stock returns the current stock level.
func (r *Record) Stock() int {
	return r.stock
}

// Reserve decrements stock by qty. Fails with InsufficientStockError and
// leaves the record untouched if qty exceeds the available stock.
func (r *Record) Reserve(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty is invalid", fmt.Errorf("%d is not greater than 0", qty))
	}

	if r.stock < qty {
		return NewInsufficientStockError(r.tier, r.variantID, r.stock, qty)
	}

	r.stock -= qty
	return nil
}

// Release increments stock by qty, undoing a prior reservation.
func (r *Record) Release(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty is invalid", fmt.Errorf("%d is not greater than 0", qty))
	}

	r.stock += qty
	return nil
}

// Package inventoryrepo implements the inventory ledger over postgres.
// Stock checks and decrements execute as a single conditional UPDATE so
// concurrent reservations against the same ledger key serialize on the row
// lock and can never overdraw.
package inventoryrepo

import (
	"distribution/internal/core/domain/model/inventory"
	"distribution/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RecordDTO represents one ledger row, keyed by (tier, owner, variant).
type RecordDTO struct {
	Tier      int       `gorm:"primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	VariantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Stock     int
}

// TableName overrides GORM's default naming to use "inventory_records".
func (RecordDTO) TableName() string {
	return "inventory_records"
}

func toDomain(dto RecordDTO) (*inventory.Record, error) {
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreRecord(inventory.Tier(dto.Tier), ownerID, variantID, dto.Stock)
}

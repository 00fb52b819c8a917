// Package masterdatarepo reads client identity and price-list master data.
// Both lookups are read-only here; the rows are maintained by an upstream
// synchronization process outside this service.
package masterdatarepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientProfileDTO represents one synchronized client row.
type ClientProfileDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountType string
}

// TableName overrides GORM's default naming to use "client_profiles".
func (ClientProfileDTO) TableName() string {
	return "client_profiles"
}

// VariantPricingDTO represents the current price-list entry for one variant.
type VariantPricingDTO struct {
	VariantID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(14,2)"`
	AgentRefPrice  decimal.Decimal `gorm:"type:numeric(14,2)"`
	LeaderRefPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName overrides GORM's default naming to use "variant_prices".
func (VariantPricingDTO) TableName() string {
	return "variant_prices"
}

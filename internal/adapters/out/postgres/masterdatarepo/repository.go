package masterdatarepo

import (
	"context"
	"errors"

	"distribution/internal/adapters/out/postgres/pgerrors"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/ports"
	"distribution/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMasterData implements ports.ClientDirectory and ports.PriceList over
// the synchronized master-data tables.
type GormMasterData struct {
	db *gorm.DB
}

// NewGormMasterData creates a master-data reader.
func NewGormMasterData(db *gorm.DB) *GormMasterData {
	return &GormMasterData{db: db}
}

// GetClient looks up one client's identity snapshot.
func (r *GormMasterData) GetClient(ctx context.Context, clientID kernel.UUID) (ports.ClientProfile, error) {
	if err := clientID.Validate(); err != nil {
		return ports.ClientProfile{}, err
	}

	var dto ClientProfileDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", clientID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ClientProfile{}, errs.NewObjectNotFoundError("clientID", clientID)
		}
		return ports.ClientProfile{}, pgerrors.Translate(err)
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ClientProfile{}, err
	}

	return ports.ClientProfile{
		ID:          id,
		AccountType: dto.AccountType,
	}, nil
}

// GetPricing looks up the current price-list entry for one variant.
func (r *GormMasterData) GetPricing(ctx context.Context, variantID kernel.UUID) (ports.VariantPricing, error) {
	if err := variantID.Validate(); err != nil {
		return ports.VariantPricing{}, err
	}

	var dto VariantPricingDTO
	err := r.db.WithContext(ctx).First(&dto, "variant_id = ?", variantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.VariantPricing{}, errs.NewObjectNotFoundError("variantID", variantID)
		}
		return ports.VariantPricing{}, pgerrors.Translate(err)
	}

	id, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return ports.VariantPricing{}, err
	}

	return ports.VariantPricing{
		VariantID:      id,
		UnitPrice:      dto.UnitPrice,
		AgentRefPrice:  dto.AgentRefPrice,
		LeaderRefPrice: dto.LeaderRefPrice,
	}, nil
}

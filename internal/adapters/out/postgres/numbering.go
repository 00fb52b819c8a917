package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const orderNumberSequence = "order_numbers_seq"

// GormOrderNumberSequence issues order numbers from a postgres sequence.
// A sequence never hands the same value to two sessions, so concurrent
// creations get unique, monotonically increasing numbers without taking
// table locks. Gaps after rolled-back creations are acceptable.
type GormOrderNumberSequence struct {
	db *gorm.DB
}

// NewGormOrderNumberSequence creates an order number issuer.
func NewGormOrderNumberSequence(db *gorm.DB) *GormOrderNumberSequence {
	return &GormOrderNumberSequence{db: db}
}

// Prepare creates the backing sequence if it does not exist yet. Called once
// at startup, after migrations.
func (s *GormOrderNumberSequence) Prepare(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Exec(fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s START 1", orderNumberSequence)).
		Error
}

// Next returns the next order number, formatted as "SO-000042".
func (s *GormOrderNumberSequence) Next(ctx context.Context) (string, error) {
	var value int64
	err := s.db.WithContext(ctx).
		Raw(fmt.Sprintf("SELECT nextval('%s')", orderNumberSequence)).
		Row().
		Scan(&value)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("SO-%06d", value), nil
}

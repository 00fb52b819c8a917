// Package postgres provides the GORM-based Unit of Work implementation.
// A unit of work binds the order repository, inventory ledger, audit log,
// and notification outbox to one database transaction so a stage transition
// and all of its side effects commit or roll back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"distribution/internal/adapters/out/postgres/auditrepo"
	"distribution/internal/adapters/out/postgres/inventoryrepo"
	"distribution/internal/adapters/out/postgres/orderrepo"
	"distribution/internal/adapters/out/postgres/outboxrepo"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each business operation gets a fresh instance isolated
// from concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to a database connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the four stores
// a stage transition touches. Repositories obtained before Begin run against
// the bare connection; after Begin they share the transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin twice on the same instance is a
// no-op rather than a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction when
// no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction when
// no transaction is active, so the deferred rollback after a successful
// commit is harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns the order repository bound to the current
// transaction, or to the bare connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// InventoryLedger returns the inventory ledger bound to the current
// transaction, or to the bare connection when none is active.
func (uow *GormUnitOfWork) InventoryLedger() ports.InventoryLedger {
	return inventoryrepo.NewGormInventoryLedger(uow.conn())
}

// AuditLog returns the approval trail store bound to the current
// transaction, or to the bare connection when none is active.
func (uow *GormUnitOfWork) AuditLog() ports.AuditLog {
	return auditrepo.NewGormAuditLog(uow.conn())
}

// NotificationOutbox returns the outbox bound to the current transaction, or
// to the bare connection when none is active.
func (uow *GormUnitOfWork) NotificationOutbox() ports.NotificationOutbox {
	return outboxrepo.NewGormOutbox(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by repository implementations on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

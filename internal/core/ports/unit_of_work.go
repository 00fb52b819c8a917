package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. A stage transition
// and its ledger mutation, audit event, and outbox entry all execute against
// repositories obtained from one UnitOfWork, so they commit or roll back as
// a single unit. Client code must explicitly manage the transaction
// lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// InventoryLedger returns an InventoryLedger bound to the current transaction.
	InventoryLedger() InventoryLedger

	// AuditLog returns an AuditLog bound to the current transaction.
	AuditLog() AuditLog

	// NotificationOutbox returns a NotificationOutbox bound to the current transaction.
	NotificationOutbox() NotificationOutbox
}

// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
//
// Every stage transition is a single command here, and each one performs its
// order mutation, ledger movement, audit entry, and outbox enqueue inside one
// unit of work. No other package moves stock.
package commands

import (
	"context"

	"distribution/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// LedgerFactory provides access to the inventory ledger within a transaction.
	LedgerFactory interface {
		InventoryLedger() ports.InventoryLedger
	}

	// AuditLogFactory provides access to the approval trail within a transaction.
	AuditLogFactory interface {
		AuditLog() ports.AuditLog
	}

	// OutboxFactory provides access to the notification outbox within a transaction.
	OutboxFactory interface {
		NotificationOutbox() ports.NotificationOutbox
	}

	// ApprovalUoW manages transactions for stage transitions. Every handler
	// in this package coordinates the same four stores, so they share one
	// unit of work shape.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   ledger := uow.InventoryLedger()
	//   orders := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	ApprovalUoW interface {
		TxManager
		OrderRepoFactory
		LedgerFactory
		AuditLogFactory
		OutboxFactory
	}

	// ApprovalUoWFactory creates new unit of work instances, one per command.
	ApprovalUoWFactory interface {
		Create() ApprovalUoW
	}
)

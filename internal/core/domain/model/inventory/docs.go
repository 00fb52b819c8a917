// Package inventory contains the domain model for the three-tier stock
// ledger. Stock is tracked per (tier, owner, product variant) key, where the
// tier is one of agent, leader, or main.
//
// The ledger obeys two rules that every adapter must preserve:
//   - stock never goes below zero: a reserve that would overdraw the record
//     fails with InsufficientStockError and performs no mutation;
//   - reserve and release are the only mutations; records are created by an
//     out-of-band allocation process and never deleted by the order core.
//
// Record is the in-memory representation of one ledger row. The persistence
// adapter enforces the same invariants with conditional updates so that
// concurrent reserves against one key serialize at the database.
package inventory

// Package order contains the Order aggregate and its approval state machine.
//
// An order moves through a two-stage approval flow. The legal transitions are:
//
//	agent_pending ──> leader_approved ──> admin_approved (terminal, success)
//	      │                  │
//	      v                  v
//	leader_rejected    admin_rejected   (terminal, failure)
//
// Each transition pairs with exactly one inventory mutation, applied by the
// approval command handlers: creation reserves agent-tier stock, leader
// approval deducts leader-tier stock, and admin approval settles against the
// main warehouse. A rejection releases stock only at the tier where the last
// successful reservation landed, never at more than one tier.
//
// Monetary fields are opaque decimals computed upstream; the aggregate stores
// them as immutable snapshots and only replaces them once, when the admin
// approval locks in the final totals.
package order

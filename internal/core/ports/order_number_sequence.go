package ports

import "context"

// OrderNumberSequence issues unique, monotonically increasing order numbers.
// Implementations must be safe under concurrent creation: two concurrent
// calls never return the same number, and issuance order matches call order.
// A database sequence satisfies this; client-side max+1 scanning does not.
type OrderNumberSequence interface {
	// Next returns the next order number, already formatted for
	// presentation (e.g. "SO-000042").
	Next(ctx context.Context) (string, error)
}

// Package tx defines the transaction boundary used by domain services.
// The implementation lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs a unit of work atomically.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	// Nested calls reuse the transaction already carried by ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager adds read-only snapshot transactions for multi-query reads.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction where every query
	// sees the same snapshot.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

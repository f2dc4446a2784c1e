package inventory

import (
	"context"

	"github.com/shopspring/decimal"
)

// Row is the locked state of one inventory record inside a transaction.
type Row struct {
	Quantity        decimal.Decimal
	ReorderQuantity decimal.Decimal
}

// Tx operates on inventory rows inside a single transaction.
type Tx interface {
	// LockRow reads quantity and reorder_quantity for id, holding a row
	// lock until the transaction ends. Returns nil if the record is absent.
	LockRow(ctx context.Context, id int64) (*Row, error)

	// SetQuantity persists a new quantity and reports rows affected.
	SetQuantity(ctx context.Context, id int64, q decimal.Decimal) (int64, error)
}

// Store provides the transactional scope the adjustment workflow runs in.
// If fn returns an error the transaction is rolled back, otherwise committed.
type Store interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

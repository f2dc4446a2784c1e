package inventory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgStore struct{ pool *pgxpool.Pool }

func NewPgStore(pool *pgxpool.Pool) *PgStore { return &PgStore{pool: pool} }

func (s *PgStore) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(pgTx{tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type pgTx struct{ tx pgx.Tx }

// FOR UPDATE serializes concurrent adjustments to the same record: the
// second transaction blocks here until the first commits, so the
// insufficient-stock check always sees the committed quantity.
func (t pgTx) LockRow(ctx context.Context, id int64) (*Row, error) {
	var r Row
	err := t.tx.QueryRow(ctx, `
		SELECT quantity, reorder_quantity
		FROM inventory
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&r.Quantity, &r.ReorderQuantity)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (t pgTx) SetQuantity(ctx context.Context, id int64, q decimal.Decimal) (int64, error) {
	ct, err := t.tx.Exec(ctx, `
		UPDATE inventory SET quantity = $2 WHERE id = $1
	`, id, q)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
)

// Transactor runs fn inside a single database transaction. The transaction
// commits only when fn returns nil.
type Transactor interface {
	ExecTx(ctx context.Context, fn func(q TxQuerier) error) error
}

// PgTransactor is the pgx backed Transactor.
type PgTransactor struct {
	Pool *pgxpool.Pool
	Q    *dbgen.Queries
}

func (t PgTransactor) ExecTx(ctx context.Context, fn func(q TxQuerier) error) error {
	if t.Pool == nil || t.Q == nil {
		return errors.New("order: transactor not configured")
	}
	tx, err := t.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(t.Q.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

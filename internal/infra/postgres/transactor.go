package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Transactor runs question bank writes in one transaction, so a set is
// replaced as a whole or not at all.
type Transactor struct {
	pool   *pgxpool.Pool
	opts   pgx.TxOptions
	logger *zap.Logger
}

// NewTransactor uses serializable read-write transactions: two imports of
// the same set must not interleave their delete and insert.
func NewTransactor(pool *pgxpool.Pool, logger *zap.Logger) *Transactor {
	return &Transactor{
		pool: pool,
		opts: pgx.TxOptions{
			IsoLevel:   pgx.Serializable,
			AccessMode: pgx.ReadWrite,
		},
		logger: logger,
	}
}

// WithinTx commits when fn succeeds and rolls back otherwise.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	err := pgx.BeginTxFunc(ctx, t.pool, t.opts, func(tx pgx.Tx) error {
		return fn(ctx, tx)
	})
	if err != nil {
		t.logger.Debug("transaction rolled back", zap.Error(err))
		return fmt.Errorf("question bank tx: %w", err)
	}
	return nil
}

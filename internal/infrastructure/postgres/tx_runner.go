package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/promo-tracker/internal/application/usecase"
	"github.com/jhoicas/promo-tracker/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	events repository.EventRepository,
	sales repository.SaleRepository,
) error) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(NewEventRepository(tx), NewSaleRepository(tx))
	})
}

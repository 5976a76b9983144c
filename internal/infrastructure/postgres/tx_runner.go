package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/billing"
)

// Ensure TxRunner implements billing.InvoiceTxRunner.
var _ billing.InvoiceTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInvoice abre una transacción REPEATABLE READ, ejecuta fn con repos atados a ella
// y hace Commit o Rollback. Las referencias leídas y la factura insertada ven el mismo estado.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(repos billing.InvoiceTxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := billing.InvoiceTxRepos{
		Business:     NewBusinessRepository(tx),
		InvoicesType: NewInvoicesTypeRepository(tx),
		TaxesType:    NewTaxesTypeRepository(tx),
		Invoices:     NewInvoiceRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

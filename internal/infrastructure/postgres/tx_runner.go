package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/application/identity"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ identity.TxRunner = (*TxRunner)(nil)
var _ usecase.CatalogTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db Beginner
}

// NewTxRunner construye el runner con el pool (o pgxmock en tests).
func NewTxRunner(db Beginner) *TxRunner {
	return &TxRunner{db: db}
}

// RunIdentity usuarios, managers y clientes atados a la misma tx (alta/edición de usuarios con sync de perfil).
func (r *TxRunner) RunIdentity(ctx context.Context, fn func(identity.Repos) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(identity.Repos{
			Users:     NewUserRepository(tx),
			Managers:  NewManagerRepository(tx),
			Customers: NewCustomerRepository(tx),
		})
	})
}

// RunCatalog productos y auditoría en la misma tx: un cambio sin su log no se confirma.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(products repository.ProductRepository, logs repository.ActionLogRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewActionLogRepository(tx))
	})
}

// run inicia la transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ENEASJO/control-valo-api/internal/application/usecase"
	"github.com/ENEASJO/control-valo-api/internal/domain/repository"
)

// Asegura que TxRunner implementa el puerto de la capa de aplicación.
var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Si fn falla en cualquier punto (por ejemplo un insert
// del reemplazo de hijos), toda la transacción se revierte: ningún lector
// observa un reemplazo parcial.
func (r *TxRunner) Run(ctx context.Context, fn func(
	empresas repository.EmpresaRepository,
	obras repository.ObraRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	empresas := NewEmpresaRepository(tx)
	obras := NewObraRepository(tx)

	if err := fn(empresas, obras); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Cuentas-api/internal/application/inventory"
	"github.com/jhoicas/Cuentas-api/internal/application/project"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and project.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ project.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de inventario (para CreateMovement).
// El bloqueo de fila lo toma el caso de uso con InventoryItemRepository.GetForUpdate.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryItemRepository(tx), NewInventoryMovementRepository(tx))
	})
}

// RunProject inicia una transacción con repos de proyecto, miembros e invitaciones
// (alta de proyecto con su owner, canje de invitaciones).
func (r *TxRunner) RunProject(ctx context.Context, fn func(
	projectRepo repository.ProjectRepository,
	memberRepo repository.MembershipRepository,
	inviteRepo repository.InviteRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewProjectRepository(tx), NewMembershipRepository(tx), NewInviteRepository(tx))
	})
}

// inTx hace Commit si fn no falla y Rollback en cualquier otro caso.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
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

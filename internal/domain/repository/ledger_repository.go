package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
)

// LedgerFilter filtros para listar asientos.
type LedgerFilter struct {
	Kind   string     // vacío = ingresos y gastos
	From   *time.Time // inclusivo
	To     *time.Time // inclusivo
	Limit  int
	Offset int
}

// LedgerTotals sumas de un proyecto (COALESCE a cero si no hay registros).
type LedgerTotals struct {
	Income      decimal.Decimal
	Expense     decimal.Decimal
	Adjustments decimal.Decimal
}

// LedgerRepository define el puerto de persistencia para ingresos, gastos y ajustes de saldo.
type LedgerRepository interface {
	CreateEntry(ctx context.Context, entry *entity.LedgerEntry) error
	GetEntry(ctx context.Context, id string) (*entity.LedgerEntry, error)
	UpdateEntry(ctx context.Context, entry *entity.LedgerEntry) error
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context, projectID string, filter LedgerFilter) ([]*entity.LedgerEntry, error)

	CreateAdjustment(ctx context.Context, adj *entity.BalanceAdjustment) error
	GetAdjustment(ctx context.Context, id string) (*entity.BalanceAdjustment, error)
	DeleteAdjustment(ctx context.Context, id string) error
	ListAdjustments(ctx context.Context, projectID string, limit, offset int) ([]*entity.BalanceAdjustment, error)

	Totals(ctx context.Context, projectID string) (LedgerTotals, error)
}

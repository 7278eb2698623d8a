package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Cuentas-api/internal/domain/inventory"
)

// ItemLine artículo con su stock derivado para el reporte.
type ItemLine struct {
	Name      string
	UnitValue *decimal.Decimal
	Stock     domaininv.Quantities
	Value     decimal.Decimal // existencias (bodega + uso) a valor unitario
}

// Totals totales contables del proyecto.
type Totals struct {
	Income      decimal.Decimal
	Expense     decimal.Decimal
	Adjustments decimal.Decimal
	Balance     decimal.Decimal

	InventoryValue decimal.Decimal
}

// ProjectReport datos ya cargados que recibe el generador.
type ProjectReport struct {
	Project       entity.Project
	GeneratedAt   time.Time
	GeneratedBy   string
	Totals        Totals
	Items         []ItemLine
	RecentEntries []*entity.LedgerEntry
	Logbook       []*entity.LogEntry
}

// Generator renderiza el reporte (implementación: infrastructure/pdf con Maroto).
type Generator interface {
	GenerateProjectReport(ctx context.Context, r *ProjectReport) ([]byte, error)
}

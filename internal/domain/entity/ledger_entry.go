package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento.
const (
	EntryKindIncome  = "income"  // ingreso
	EntryKindExpense = "expense" // gasto
)

// LedgerEntry ingreso o gasto registrado en un proyecto.
type LedgerEntry struct {
	ID          string
	ProjectID   string
	Kind        string          // income, expense
	Amount      decimal.Decimal // siempre positivo; el signo lo da Kind
	Category    string
	Description string
	Date        time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BalanceAdjustment ajuste manual del saldo (positivo o negativo, nunca cero).
type BalanceAdjustment struct {
	ID        string
	ProjectID string
	Amount    decimal.Decimal
	Reason    string
	Date      time.Time
	CreatedBy string
	CreatedAt time.Time
}

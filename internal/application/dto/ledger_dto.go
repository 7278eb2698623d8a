package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEntryRequest body para POST /entries (ingreso o gasto).
type CreateEntryRequest struct {
	Kind        string          `json:"kind" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        *time.Time      `json:"date,omitempty"` // por defecto ahora
}

// UpdateEntryRequest body para PUT /entries/:entryID.
type UpdateEntryRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

// EntryResponse asiento de ingreso o gasto.
type EntryResponse struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EntryListResponse listado paginado de asientos.
type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CreateAdjustmentRequest body para POST /balances.
type CreateAdjustmentRequest struct {
	Amount decimal.Decimal `json:"amount"` // con signo, distinto de cero
	Reason string          `json:"reason"`
	Date   *time.Time      `json:"date,omitempty"`
}

// AdjustmentResponse ajuste de saldo.
type AdjustmentResponse struct {
	ID        string          `json:"id"`
	ProjectID string          `json:"project_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	Date      time.Time       `json:"date"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// SummaryResponse totales del proyecto.
// Balance = TotalIncome - TotalExpense + TotalAdjustments.
type SummaryResponse struct {
	ProjectID        string          `json:"project_id"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	TotalAdjustments decimal.Decimal `json:"total_adjustments"`
	Balance          decimal.Decimal `json:"balance"`
}

// EntryFilter query de GET /entries.
type EntryFilter struct {
	Kind string     `query:"kind"`
	From *time.Time `query:"from"`
	To   *time.Time `query:"to"`
	PageRequest
}

// AdjustmentListResponse listado paginado de ajustes.
type AdjustmentListResponse struct {
	Items []AdjustmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

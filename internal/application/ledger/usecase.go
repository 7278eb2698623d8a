// Package ledger contiene los casos de uso de ingresos, gastos y ajustes de saldo.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

// LedgerUseCase registro contable del proyecto.
type LedgerUseCase struct {
	ledgerRepo repository.LedgerRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(ledgerRepo repository.LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// CreateEntry registra un ingreso o gasto (requiere write). amount debe ser > 0.
func (uc *LedgerUseCase) CreateEntry(ctx context.Context, actor access.Actor, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if err := actor.Require(access.PermWrite); err != nil {
		return nil, err
	}
	kind, err := parseKind(in.Kind)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser mayor que cero", domain.ErrInvalidInput)
	}
	now := time.Now()
	e := &entity.LedgerEntry{
		ID:          uuid.New().String(),
		ProjectID:   actor.ProjectID,
		Kind:        kind,
		Amount:      in.Amount,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Date:        dateOr(in.Date, now),
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.ledgerRepo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}
	return toEntryResponse(e), nil
}

// UpdateEntry modifica monto, categoría, descripción o fecha (requiere write). El tipo no cambia.
func (uc *LedgerUseCase) UpdateEntry(ctx context.Context, actor access.Actor, entryID string, in dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	if err := actor.Require(access.PermWrite); err != nil {
		return nil, err
	}
	e, err := uc.loadEntry(ctx, actor, entryID)
	if err != nil {
		return nil, err
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount debe ser mayor que cero", domain.ErrInvalidInput)
		}
		e.Amount = *in.Amount
	}
	if in.Category != nil {
		e.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	e.UpdatedAt = time.Now()
	if err := uc.ledgerRepo.UpdateEntry(ctx, e); err != nil {
		return nil, err
	}
	return toEntryResponse(e), nil
}

// DeleteEntry elimina un asiento (requiere delete). Quien lo creó no tiene privilegio extra.
func (uc *LedgerUseCase) DeleteEntry(ctx context.Context, actor access.Actor, entryID string) error {
	if err := actor.Require(access.PermDelete); err != nil {
		return err
	}
	e, err := uc.loadEntry(ctx, actor, entryID)
	if err != nil {
		return err
	}
	return uc.ledgerRepo.DeleteEntry(ctx, e.ID)
}

// ListEntries lista asientos filtrando por tipo y rango de fechas (requiere read).
func (uc *LedgerUseCase) ListEntries(ctx context.Context, actor access.Actor, f dto.EntryFilter) (*dto.EntryListResponse, error) {
	if err := actor.Require(access.PermRead); err != nil {
		return nil, err
	}
	kind := ""
	if strings.TrimSpace(f.Kind) != "" {
		k, err := parseKind(f.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, fmt.Errorf("%w: to es anterior a from", domain.ErrInvalidInput)
	}
	f.DefaultPage()
	list, err := uc.ledgerRepo.ListEntries(ctx, actor.ProjectID, repository.LedgerFilter{
		Kind: kind, From: f.From, To: f.To, Limit: f.Limit, Offset: f.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEntryResponse(e))
	}
	return &dto.EntryListResponse{Items: out, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// CreateAdjustment registra un ajuste de saldo con signo, distinto de cero (requiere write).
func (uc *LedgerUseCase) CreateAdjustment(ctx context.Context, actor access.Actor, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if err := actor.Require(access.PermWrite); err != nil {
		return nil, err
	}
	if in.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount no puede ser cero", domain.ErrInvalidInput)
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	a := &entity.BalanceAdjustment{
		ID:        uuid.New().String(),
		ProjectID: actor.ProjectID,
		Amount:    in.Amount,
		Reason:    reason,
		Date:      dateOr(in.Date, now),
		CreatedBy: actor.UserID,
		CreatedAt: now,
	}
	if err := uc.ledgerRepo.CreateAdjustment(ctx, a); err != nil {
		return nil, err
	}
	return toAdjustmentResponse(a), nil
}

// DeleteAdjustment elimina un ajuste (requiere delete).
func (uc *LedgerUseCase) DeleteAdjustment(ctx context.Context, actor access.Actor, id string) error {
	if err := actor.Require(access.PermDelete); err != nil {
		return err
	}
	a, err := uc.ledgerRepo.GetAdjustment(ctx, id)
	if err != nil {
		return err
	}
	if a == nil || a.ProjectID != actor.ProjectID {
		return domain.ErrNotFound
	}
	return uc.ledgerRepo.DeleteAdjustment(ctx, a.ID)
}

// ListAdjustments lista los ajustes de saldo (requiere read).
func (uc *LedgerUseCase) ListAdjustments(ctx context.Context, actor access.Actor, page dto.PageRequest) (*dto.AdjustmentListResponse, error) {
	if err := actor.Require(access.PermRead); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.ledgerRepo.ListAdjustments(ctx, actor.ProjectID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAdjustmentResponse(a))
	}
	return &dto.AdjustmentListResponse{Items: out, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Summary totales y saldo del proyecto (requiere read).
func (uc *LedgerUseCase) Summary(ctx context.Context, actor access.Actor) (*dto.SummaryResponse, error) {
	if err := actor.Require(access.PermRead); err != nil {
		return nil, err
	}
	t, err := uc.ledgerRepo.Totals(ctx, actor.ProjectID)
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{
		ProjectID:        actor.ProjectID,
		TotalIncome:      t.Income,
		TotalExpense:     t.Expense,
		TotalAdjustments: t.Adjustments,
		Balance:          t.Income.Sub(t.Expense).Add(t.Adjustments),
	}, nil
}

func (uc *LedgerUseCase) loadEntry(ctx context.Context, actor access.Actor, id string) (*entity.LedgerEntry, error) {
	e, err := uc.ledgerRepo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || e.ProjectID != actor.ProjectID {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func parseKind(s string) (string, error) {
	switch k := strings.ToLower(strings.TrimSpace(s)); k {
	case entity.EntryKindIncome, entity.EntryKindExpense:
		return k, nil
	default:
		return "", fmt.Errorf("%w: kind debe ser income o expense", domain.ErrInvalidInput)
	}
}

func dateOr(d *time.Time, def time.Time) time.Time {
	if d == nil || d.IsZero() {
		return def
	}
	return *d
}

func toEntryResponse(e *entity.LedgerEntry) *dto.EntryResponse {
	return &dto.EntryResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		Kind:        e.Kind,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toAdjustmentResponse(a *entity.BalanceAdjustment) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		Amount:    a.Amount,
		Reason:    a.Reason,
		Date:      a.Date,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
	}
}

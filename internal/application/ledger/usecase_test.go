package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/application/ledger"
	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/infrastructure/memory"
)

const projectID = "p-ledger"

func actorWith(userID string, role access.Role) access.Actor {
	return access.Actor{UserID: userID, ProjectID: projectID, Role: role}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPermisos_VisorYNormal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := ledger.NewLedgerUseCase(store.Ledger())

	// el visor no crea nada y no se persiste nada
	_, err := uc.CreateEntry(ctx, actorWith("v", access.RoleView), dto.CreateEntryRequest{Kind: "expense", Amount: dec("10")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, err.Error(), "No tienes permisos para")
	assert.Equal(t, 0, store.Writes())

	// normal crea pero no puede borrar su propio registro
	normal := actorWith("n", access.RoleNormal)
	e, err := uc.CreateEntry(ctx, normal, dto.CreateEntryRequest{Kind: "expense", Amount: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, "n", e.CreatedBy)
	writes := store.Writes()

	err = uc.DeleteEntry(ctx, normal, e.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, writes, store.Writes())

	require.NoError(t, uc.DeleteEntry(ctx, actorWith("a", access.RoleAdmin), e.ID))
}

func TestValidaciones(t *testing.T) {
	ctx := context.Background()
	uc := ledger.NewLedgerUseCase(memory.NewStore().Ledger())
	normal := actorWith("n", access.RoleNormal)

	_, err := uc.CreateEntry(ctx, normal, dto.CreateEntryRequest{Kind: "transfer", Amount: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateEntry(ctx, normal, dto.CreateEntryRequest{Kind: "income", Amount: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateEntry(ctx, normal, dto.CreateEntryRequest{Kind: "income", Amount: dec("-5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateAdjustment(ctx, normal, dto.CreateAdjustmentRequest{Amount: dec("0"), Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateAdjustment(ctx, normal, dto.CreateAdjustmentRequest{Amount: dec("5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateEntry(ctx, normal, "no-existe", dto.UpdateEntryRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	uc := ledger.NewLedgerUseCase(memory.NewStore().Ledger())
	normal := actorWith("n", access.RoleNormal)

	s, err := uc.Summary(ctx, actorWith("v", access.RoleView))
	require.NoError(t, err)
	assert.True(t, s.Balance.IsZero())

	_, err = uc.CreateEntry(ctx, normal, dto.CreateEntryRequest{Kind: "income", Amount: dec("1500000.50")})
	require.NoError(t, err)
	_, err = uc.CreateEntry(ctx, normal, dto.CreateEntryRequest{Kind: "expense", Amount: dec("320000")})
	require.NoError(t, err)
	_, err = uc.CreateAdjustment(ctx, normal, dto.CreateAdjustmentRequest{Amount: dec("-0.50"), Reason: "redondeo"})
	require.NoError(t, err)

	s, err = uc.Summary(ctx, actorWith("v", access.RoleView))
	require.NoError(t, err)
	assert.True(t, dec("1500000.50").Equal(s.TotalIncome))
	assert.True(t, dec("320000").Equal(s.TotalExpense))
	assert.True(t, dec("-0.50").Equal(s.TotalAdjustments))
	assert.True(t, dec("1180000").Equal(s.Balance), s.Balance.String())
}

func TestListEntries_Filtros(t *testing.T) {
	ctx := context.Background()
	uc := ledger.NewLedgerUseCase(memory.NewStore().Ledger())
	normal := actorWith("n", access.RoleNormal)

	day := func(d int) *time.Time {
		v := time.Date(2025, 1, d, 12, 0, 0, 0, time.UTC)
		return &v
	}
	for i, kind := range []string{"income", "expense", "expense", "income"} {
		_, err := uc.CreateEntry(ctx, normal, dto.CreateEntryRequest{Kind: kind, Amount: dec("10"), Date: day(i + 1)})
		require.NoError(t, err)
	}

	all, err := uc.ListEntries(ctx, normal, dto.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 4)
	assert.Equal(t, 20, all.Page.Limit)

	expenses, err := uc.ListEntries(ctx, normal, dto.EntryFilter{Kind: "EXPENSE"})
	require.NoError(t, err)
	assert.Len(t, expenses.Items, 2)

	ranged, err := uc.ListEntries(ctx, normal, dto.EntryFilter{From: day(2), To: day(3)})
	require.NoError(t, err)
	assert.Len(t, ranged.Items, 2)

	_, err = uc.ListEntries(ctx, normal, dto.EntryFilter{From: day(3), To: day(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	paged, err := uc.ListEntries(ctx, normal, dto.EntryFilter{PageRequest: dto.PageRequest{Limit: 3, Offset: 2}})
	require.NoError(t, err)
	assert.Len(t, paged.Items, 2)
}

func TestAjustes_ListYDelete(t *testing.T) {
	ctx := context.Background()
	uc := ledger.NewLedgerUseCase(memory.NewStore().Ledger())

	a, err := uc.CreateAdjustment(ctx, actorWith("n", access.RoleNormal), dto.CreateAdjustmentRequest{Amount: dec("100"), Reason: "saldo inicial"})
	require.NoError(t, err)

	list, err := uc.ListAdjustments(ctx, actorWith("v", access.RoleView), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	assert.ErrorIs(t, uc.DeleteAdjustment(ctx, actorWith("n", access.RoleNormal), a.ID), domain.ErrForbidden)
	other := access.Actor{UserID: "o", ProjectID: "otro", Role: access.RoleOwner}
	assert.ErrorIs(t, uc.DeleteAdjustment(ctx, other, a.ID), domain.ErrNotFound)
	require.NoError(t, uc.DeleteAdjustment(ctx, actorWith("o", access.RoleOwner), a.ID))
}

package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
	"github.com/jhoicas/Cuentas-api/internal/infrastructure/memory"
)

func TestProjectDelete_EnCascada(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	now := time.Now()

	require.NoError(t, s.Projects().Create(ctx, &entity.Project{ID: "p1", Name: "Obra", OwnerID: "u1", CreatedAt: now}))
	require.NoError(t, s.Members().Create(ctx, &entity.Membership{ProjectID: "p1", UserID: "u1", Role: access.RoleOwner}))
	require.NoError(t, s.Items().Create(ctx, &entity.InventoryItem{ID: "i1", ProjectID: "p1", Name: "Cemento"}))
	require.NoError(t, s.Movements().Create(ctx, &entity.InventoryMovement{ID: "m1", ProjectID: "p1", ItemID: "i1"}))
	require.NoError(t, s.Ledger().CreateEntry(ctx, &entity.LedgerEntry{ID: "e1", ProjectID: "p1", Kind: entity.EntryKindIncome, Amount: decimal.NewFromInt(10)}))

	require.NoError(t, s.Projects().Delete(ctx, "p1"))

	p, err := s.Projects().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, p)
	m, err := s.Members().Get(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Nil(t, m)
	movs, err := s.Movements().ListByItem(ctx, "i1")
	require.NoError(t, err)
	assert.Empty(t, movs)
	totals, err := s.Ledger().Totals(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, totals.Income.IsZero())
}

func TestItems_BorradoLogicoConservaHistorial(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Items().Create(ctx, &entity.InventoryItem{ID: "i1", ProjectID: "p1", Name: "Arena"}))
	require.NoError(t, s.Movements().Create(ctx, &entity.InventoryMovement{ID: "m1", ProjectID: "p1", ItemID: "i1"}))
	require.NoError(t, s.Items().SoftDelete(ctx, "i1", time.Now()))

	list, err := s.Items().ListByProject(ctx, "p1", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	it, err := s.Items().GetByID(ctx, "i1")
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.True(t, it.Deleted())

	movs, err := s.Movements().ListByItem(ctx, "i1")
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestLedger_FiltrosYTotales(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }

	for i, e := range []entity.LedgerEntry{
		{Kind: entity.EntryKindIncome, Amount: decimal.NewFromInt(1000), Date: day(1)},
		{Kind: entity.EntryKindExpense, Amount: decimal.NewFromInt(300), Date: day(5)},
		{Kind: entity.EntryKindIncome, Amount: decimal.NewFromInt(200), Date: day(10)},
	} {
		e.ID = string(rune('a' + i))
		e.ProjectID = "p1"
		require.NoError(t, s.Ledger().CreateEntry(ctx, &e))
	}
	require.NoError(t, s.Ledger().CreateAdjustment(ctx, &entity.BalanceAdjustment{ID: "adj", ProjectID: "p1", Amount: decimal.NewFromInt(-50)}))

	from, to := day(2), day(10)
	list, err := s.Ledger().ListEntries(ctx, "p1", repository.LedgerFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Date.Equal(day(10)), "más reciente primero")

	incomes, err := s.Ledger().ListEntries(ctx, "p1", repository.LedgerFilter{Kind: entity.EntryKindIncome, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, incomes, 1)

	totals, err := s.Ledger().Totals(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, totals.Income.Equal(decimal.NewFromInt(1200)))
	assert.True(t, totals.Expense.Equal(decimal.NewFromInt(300)))
	assert.True(t, totals.Adjustments.Equal(decimal.NewFromInt(-50)))
}

func TestWrites_CuentaSoloEscrituras(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	_, err := s.Projects().ListByUser(ctx, "u1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Writes())

	require.NoError(t, s.Logbook().Create(ctx, &entity.LogEntry{ID: "l1", ProjectID: "p1"}))
	assert.Equal(t, 1, s.Writes())
}

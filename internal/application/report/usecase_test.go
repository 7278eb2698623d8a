package report_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/application/inventory"
	"github.com/jhoicas/Cuentas-api/internal/application/ledger"
	"github.com/jhoicas/Cuentas-api/internal/application/logbook"
	"github.com/jhoicas/Cuentas-api/internal/application/project"
	"github.com/jhoicas/Cuentas-api/internal/application/report"
	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	domaininv "github.com/jhoicas/Cuentas-api/internal/domain/inventory"
	"github.com/jhoicas/Cuentas-api/internal/infrastructure/memory"
)

type captureGenerator struct {
	got *report.ProjectReport
}

func (g *captureGenerator) GenerateProjectReport(_ context.Context, r *report.ProjectReport) ([]byte, error) {
	g.got = r
	return []byte("%PDF-fake"), nil
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	p, err := project.NewProjectUseCase(store.TxRunner(), store.Projects()).
		Create(ctx, "ana", dto.CreateProjectRequest{Name: "Obra Casa #2"})
	require.NoError(t, err)
	owner := access.Actor{UserID: "ana", ProjectID: p.ID, Role: access.RoleOwner}

	led := ledger.NewLedgerUseCase(store.Ledger())
	_, err = led.CreateEntry(ctx, owner, dto.CreateEntryRequest{Kind: "income", Amount: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	_, err = led.CreateEntry(ctx, owner, dto.CreateEntryRequest{Kind: "expense", Amount: decimal.NewFromInt(300)})
	require.NoError(t, err)

	inv := inventory.NewInventoryUseCase(store.TxRunner(), store.Items(), store.Movements())
	unit := decimal.NewFromInt(25000)
	item, err := inv.CreateItem(ctx, owner, dto.CreateItemRequest{Name: "Cemento", UnitValue: &unit})
	require.NoError(t, err)
	_, err = inv.CreateMovement(ctx, owner, item.ID, dto.CreateMovementRequest{
		Quantity: decimal.NewFromInt(12), FromState: string(domaininv.StateExterno), ToState: string(domaininv.StateBodega),
	})
	require.NoError(t, err)

	_, err = logbook.NewLogbookUseCase(store.Logbook()).Create(ctx, owner, dto.CreateLogEntryRequest{Title: "Inicio"})
	require.NoError(t, err)

	gen := &captureGenerator{}
	uc := report.NewReportUseCase(store.Projects(), store.Ledger(), store.Items(), store.Movements(), store.Logbook(), gen)

	viewer := access.Actor{UserID: "v", ProjectID: p.ID, Role: access.RoleView}
	pdf, filename, err := uc.Generate(ctx, viewer)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.True(t, strings.HasPrefix(filename, "reporte_obra-casa-2_"), filename)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))

	require.NotNil(t, gen.got)
	assert.True(t, decimal.NewFromInt(700).Equal(gen.got.Totals.Balance))
	require.Len(t, gen.got.Items, 1)
	assert.Equal(t, int64(12), gen.got.Items[0].Stock.Bodega)
	assert.True(t, decimal.NewFromInt(300000).Equal(gen.got.Items[0].Value))
	assert.True(t, decimal.NewFromInt(300000).Equal(gen.got.Totals.InventoryValue))
	assert.Len(t, gen.got.RecentEntries, 2)
	assert.Len(t, gen.got.Logbook, 1)
}

func TestGenerate_ProyectoInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := report.NewReportUseCase(store.Projects(), store.Ledger(), store.Items(), store.Movements(), store.Logbook(), &captureGenerator{})
	_, _, err := uc.Generate(context.Background(), access.Actor{UserID: "x", ProjectID: "nope", Role: access.RoleView})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = uc.Generate(context.Background(), access.Actor{UserID: "x", ProjectID: "nope", Role: "intruso"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Package report arma el reporte PDF de un proyecto: resumen contable, inventario y bitácora.
package report

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Cuentas-api/internal/domain/inventory"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

const (
	reportRecentEntries = 25
	reportLogEntries    = 10
	reportMaxItems      = 200
)

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// ReportUseCase carga los datos del proyecto en paralelo y delega el render al Generator.
type ReportUseCase struct {
	projectRepo repository.ProjectRepository
	ledgerRepo  repository.LedgerRepository
	itemRepo    repository.InventoryItemRepository
	movRepo     repository.InventoryMovementRepository
	logRepo     repository.LogbookRepository
	generator   Generator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	projectRepo repository.ProjectRepository,
	ledgerRepo repository.LedgerRepository,
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
	logRepo repository.LogbookRepository,
	generator Generator,
) *ReportUseCase {
	return &ReportUseCase{
		projectRepo: projectRepo,
		ledgerRepo:  ledgerRepo,
		itemRepo:    itemRepo,
		movRepo:     movRepo,
		logRepo:     logRepo,
		generator:   generator,
	}
}

// Build reúne los datos del reporte (requiere read).
//
// Cuatro lecturas en paralelo:
//  1. Totals               → ingresos, gastos, ajustes
//  2. ListEntries(25)      → últimos asientos
//  3. items + movimientos  → stock derivado por artículo
//  4. bitácora(10)         → notas recientes
func (uc *ReportUseCase) Build(ctx context.Context, actor access.Actor) (*ProjectReport, error) {
	if err := actor.Require(access.PermRead); err != nil {
		return nil, err
	}
	p, err := uc.projectRepo.GetByID(ctx, actor.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("reporte: obtener proyecto: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	type totalsResult struct {
		totals repository.LedgerTotals
		err    error
	}
	type entriesResult struct {
		entries []*entity.LedgerEntry
		err     error
	}
	type itemsResult struct {
		items []ItemLine
		err   error
	}
	type logResult struct {
		entries []*entity.LogEntry
		err     error
	}

	totalsCh := make(chan totalsResult, 1)
	entriesCh := make(chan entriesResult, 1)
	itemsCh := make(chan itemsResult, 1)
	logCh := make(chan logResult, 1)

	go func() {
		t, err := uc.ledgerRepo.Totals(ctx, actor.ProjectID)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		e, err := uc.ledgerRepo.ListEntries(ctx, actor.ProjectID, repository.LedgerFilter{Limit: reportRecentEntries})
		entriesCh <- entriesResult{e, err}
	}()
	go func() {
		items, err := uc.loadItems(ctx, actor.ProjectID)
		itemsCh <- itemsResult{items, err}
	}()
	go func() {
		l, err := uc.logRepo.ListByProject(ctx, actor.ProjectID, reportLogEntries, 0)
		logCh <- logResult{l, err}
	}()

	totals := <-totalsCh
	entries := <-entriesCh
	items := <-itemsCh
	logs := <-logCh

	if totals.err != nil {
		return nil, fmt.Errorf("reporte: totales: %w", totals.err)
	}
	if entries.err != nil {
		return nil, fmt.Errorf("reporte: asientos: %w", entries.err)
	}
	if items.err != nil {
		return nil, fmt.Errorf("reporte: inventario: %w", items.err)
	}
	if logs.err != nil {
		return nil, fmt.Errorf("reporte: bitácora: %w", logs.err)
	}

	t := totals.totals
	inventoryValue := decimal.Zero
	for _, it := range items.items {
		inventoryValue = inventoryValue.Add(it.Value)
	}
	return &ProjectReport{
		Project:     *p,
		GeneratedAt: time.Now(),
		GeneratedBy: actor.UserID,
		Totals: Totals{
			Income:      t.Income,
			Expense:     t.Expense,
			Adjustments: t.Adjustments,
			Balance:     t.Income.Sub(t.Expense).Add(t.Adjustments),

			InventoryValue: inventoryValue,
		},
		Items:         items.items,
		RecentEntries: entries.entries,
		Logbook:       logs.entries,
	}, nil
}

// Generate construye y renderiza el reporte. Devuelve los bytes del PDF y un nombre de archivo.
func (uc *ReportUseCase) Generate(ctx context.Context, actor access.Actor) (pdfBytes []byte, filename string, err error) {
	r, err := uc.Build(ctx, actor)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateProjectReport(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	return pdfBytes, reportFilename(r), nil
}

func (uc *ReportUseCase) loadItems(ctx context.Context, projectID string) ([]ItemLine, error) {
	items, err := uc.itemRepo.ListByProject(ctx, projectID, reportMaxItems, 0)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]*entity.InventoryMovement)
	for _, m := range movements {
		grouped[m.ItemID] = append(grouped[m.ItemID], m)
	}
	lines := make([]ItemLine, 0, len(items))
	for _, it := range items {
		line := ItemLine{
			Name:      it.Name,
			UnitValue: it.UnitValue,
			Stock:     domaininv.Derive(grouped[it.ID]),
		}
		if it.UnitValue != nil {
			line.Value = domaininv.StockValue(line.Stock, *it.UnitValue)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// reportFilename ej: "reporte_obra-casa_2025-03-01.pdf".
func reportFilename(r *ProjectReport) string {
	slug := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(r.Project.Name), "-"), "-")
	if slug == "" {
		slug = "proyecto"
	}
	return fmt.Sprintf("reporte_%s_%s.pdf", slug, r.GeneratedAt.Format("2006-01-02"))
}

// Package pdf implementa el reporte PDF de un proyecto con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del proyecto + moneda │ Fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ingresos / Gastos / Ajustes / SALDO / Inventario  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INVENTARIO: Artículo | Bodega | En uso | Gastado | Valor   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ÚLTIMOS MOVIMIENTOS: Fecha | Tipo | Categoría | Monto      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BITÁCORA: Fecha + título + texto                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Cuentas-api/internal/application/report"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
)

var _ report.Generator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.Generator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. locale es una etiqueta BCP 47 (REPORT_LOCALE,
// ej. "es-CO"); si no se reconoce se usa español.
func NewMarotoPDFGenerator(locale string) *MarotoPDFGenerator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return &MarotoPDFGenerator{printer: message.NewPrinter(tag)}
}

// GenerateProjectReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateProjectReport(_ context.Context, r *report.ProjectReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte "+r.Project.Name, true).
		WithAuthor(r.GeneratedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(r))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("INVENTARIO"))
	if len(r.Items) == 0 {
		m.AddRows(emptyRow("Sin artículos registrados."))
	} else {
		m.AddRows(inventoryHeaderRow())
		m.AddRows(g.inventoryRows(r.Items)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("ÚLTIMOS MOVIMIENTOS"))
	if len(r.RecentEntries) == 0 {
		m.AddRows(emptyRow("Sin ingresos ni gastos."))
	} else {
		m.AddRows(entriesHeaderRow())
		m.AddRows(g.entryRows(r.RecentEntries)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("BITÁCORA"))
	if len(r.Logbook) == 0 {
		m.AddRows(emptyRow("Sin notas."))
	} else {
		m.AddRows(logbookRows(r.Logbook)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre y moneda (izq), fecha de generación (der).
func headerRow(r *report.ProjectReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(r.Project.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(r.Project.Description, "Moneda: "+r.Project.Currency), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("REPORTE DEL PROYECTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: totales alineados a la derecha, una línea cada 6 mm.
func (g *MarotoPDFGenerator) summaryRow(r *report.ProjectReport) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	balanceColor := colorPrimary
	if r.Totals.Balance.IsNegative() {
		balanceColor = colorRed
	}

	return row.New(34).Add(
		col.New(4).Add(sectionText("RESUMEN")),
		col.New(4).Add(
			label("Ingresos:", 2),
			label("Gastos:", 8),
			label("Ajustes:", 14),
			text.New("SALDO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: balanceColor, Right: 2, Top: 20,
			}),
			label("Valor inventario:", 27),
		),
		col.New(4).Add(
			value(g.money(r.Totals.Income), 2),
			value(g.money(r.Totals.Expense), 8),
			value(g.money(r.Totals.Adjustments), 14),
			text.New(g.money(r.Totals.Balance), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: balanceColor, Right: 1, Top: 20,
			}),
			value(g.money(r.Totals.InventoryValue), 27),
		),
	)
}

func inventoryHeaderRow() core.Row {
	return row.New(7).Add(
		headerCol("Artículo", 4, align.Left),
		headerCol("Bodega", 1, align.Center),
		headerCol("En uso", 1, align.Center),
		headerCol("Gastado", 2, align.Center),
		headerCol("Valor unit.", 2, align.Right),
		headerCol("Existencias", 2, align.Right),
	)
}

func (g *MarotoPDFGenerator) inventoryRows(items []report.ItemLine) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		unit, value := "—", "—"
		if it.UnitValue != nil {
			unit, value = g.money(*it.UnitValue), g.money(it.Value)
		}
		rows = append(rows, row.New(6).Add(
			cell(it.Name, 4, align.Left),
			cell(g.printer.Sprintf("%d", it.Stock.Bodega), 1, align.Center),
			cell(g.printer.Sprintf("%d", it.Stock.Uso), 1, align.Center),
			cell(g.printer.Sprintf("%d", it.Stock.Gastado), 2, align.Center),
			cell(unit, 2, align.Right),
			cell(value, 2, align.Right),
		))
	}
	return rows
}

func entriesHeaderRow() core.Row {
	return row.New(7).Add(
		headerCol("Fecha", 2, align.Left),
		headerCol("Tipo", 2, align.Left),
		headerCol("Categoría / descripción", 5, align.Left),
		headerCol("Monto", 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) entryRows(entries []*entity.LedgerEntry) []core.Row {
	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		kind, amount := "Ingreso", g.money(e.Amount)
		if e.Kind == entity.EntryKindExpense {
			kind, amount = "Gasto", "-"+amount
		}
		detail := e.Category
		if e.Description != "" {
			detail = joinNonEmpty(e.Category, e.Description)
		}
		rows = append(rows, row.New(6).Add(
			cell(e.Date.Format("02/01/2006"), 2, align.Left),
			cell(kind, 2, align.Left),
			cell(nonEmpty(detail, "—"), 5, align.Left),
			cell(amount, 3, align.Right),
		))
	}
	return rows
}

func logbookRows(entries []*entity.LogEntry) []core.Row {
	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, row.New(12).Add(
			col.New(12).Add(
				text.New(e.Date.Format("02/01/2006")+"  "+e.Title, props.Text{
					Style: fontstyle.Bold, Size: 8, Top: 1,
				}),
				text.New(truncate(e.Body, 180), props.Text{
					Size: 8, Top: 6, Color: colorGray,
				}),
			),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(sectionText(s)))
}

func sectionText(s string) core.Component {
	return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2})
}

func emptyRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(s, props.Text{Size: 8, Color: colorGray, Top: 1})))
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

// money formatea un monto con separadores del locale configurado y dos decimales.
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " · " + b
}

// truncate corta s a n runas agregando "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

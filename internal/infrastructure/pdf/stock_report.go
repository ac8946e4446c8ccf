// Package pdf implementa la generación del reporte de existencias en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de artículos / artículos bajo mínimo         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Artículo | Categoría | Stock | Mínimo | Estado │
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

	appreport "github.com/chocodealers/ledger-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 93, Green: 64, Blue: 55} // marrón chocolate
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStockReport implementa report.StockReportPDFGenerator usando Maroto v2.
type MarotoStockReport struct {
	businessName string
}

// NewMarotoStockReport construye el generador.
func NewMarotoStockReport(businessName string) *MarotoStockReport {
	return &MarotoStockReport{businessName: businessName}
}

var _ appreport.StockReportPDFGenerator = (*MarotoStockReport)(nil)

// GenerateStockReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStockReport) GenerateStockReportPDF(_ context.Context, rep *appreport.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de existencias", true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rep) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoStockReport) headerRow(rep *appreport.StockReport) core.Row {
	fecha := rep.GeneratedAt.Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de existencias", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func summaryRow(rep *appreport.StockReport) core.Row {
	summary := fmt.Sprintf("Artículos activos: %d", len(rep.Rows))
	lowProps := props.Text{Size: 8, Align: align.Right, Top: 2, Color: colorGray}
	low := "sin alertas de stock"
	if rep.LowStockCount > 0 {
		low = fmt.Sprintf("%d artículos bajo mínimo", rep.LowStockCount)
		lowProps.Color = colorAlert
		lowProps.Style = fontstyle.Bold
	}
	return row.New(8).Add(
		col.New(6).Add(text.New(summary, props.Text{Size: 8, Top: 2, Color: colorGray})),
		col.New(6).Add(text.New(low, lowProps)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Artículo", 3, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 2, align.Right),
		h("Mínimo", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

func tableRows(rep *appreport.StockReport) []core.Row {
	result := make([]core.Row, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		estado := "OK"
		cellColor := colorGray
		if r.BelowMin {
			estado = "BAJO"
			cellColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(r.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.Category, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(r.StockDisplay, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(r.MinStock.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray})),
			col.New(1).Add(text.New(estado, props.Text{
				Size: 7.5, Align: align.Center, Top: 1, Style: fontstyle.Bold, Color: cellColor,
			})),
		))
	}
	return result
}

package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chocodealers/ledger-api/internal/domain/repository"
	"github.com/chocodealers/ledger-api/internal/domain/units"
)

// StockReportRow una fila del reporte de existencias.
type StockReportRow struct {
	SKU          string
	Name         string
	Category     string
	Stock        decimal.Decimal
	StockDisplay string // formateado en unidad legible ("2.5kg", "40 pieces")
	MinStock     decimal.Decimal
	BelowMin     bool
}

// StockReport datos ya resueltos para render.
type StockReport struct {
	GeneratedAt   time.Time
	Rows          []StockReportRow
	LowStockCount int
}

// StockReportPDFGenerator puerto de salida para el render del reporte.
// La implementación concreta usa Maroto; para tests se puede inyectar un mock.
type StockReportPDFGenerator interface {
	GenerateStockReportPDF(ctx context.Context, rep *StockReport) ([]byte, error)
}

// ReportUseCase arma el reporte de existencias del catálogo completo.
type ReportUseCase struct {
	itemRepo  repository.ItemRepository
	generator StockReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(itemRepo repository.ItemRepository, generator StockReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{itemRepo: itemRepo, generator: generator}
}

// maxReportItems tope del reporte; el catálogo del taller es chico (decenas de artículos).
const maxReportItems = 500

// BuildStockReport lee el catálogo activo y lo convierte en filas de reporte.
func (uc *ReportUseCase) BuildStockReport(ctx context.Context) (*StockReport, error) {
	items, err := uc.itemRepo.ListActive(ctx, maxReportItems, 0)
	if err != nil {
		return nil, fmt.Errorf("listar artículos: %w", err)
	}

	rep := &StockReport{GeneratedAt: time.Now()}
	for _, it := range items {
		below := it.MinStock.GreaterThan(decimal.Zero) && it.CurrentStock.LessThan(it.MinStock)
		if below {
			rep.LowStockCount++
		}
		rep.Rows = append(rep.Rows, StockReportRow{
			SKU:          it.SKU,
			Name:         it.Name,
			Category:     it.Category,
			Stock:        it.CurrentStock,
			StockDisplay: units.FormatQuantity(it, it.CurrentStock),
			MinStock:     it.MinStock,
			BelowMin:     below,
		})
	}
	return rep, nil
}

// GenerateStockReportPDF arma el reporte y lo renderiza a PDF.
func (uc *ReportUseCase) GenerateStockReportPDF(ctx context.Context) ([]byte, error) {
	rep, err := uc.BuildStockReport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateStockReportPDF(ctx, rep)
}

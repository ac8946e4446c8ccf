package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chocodealers/ledger-api/internal/application/dto"
	"github.com/chocodealers/ledger-api/internal/application/report"
)

// ReportHandler genera reportes descargables (protegido).
type ReportHandler struct {
	report *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reportUC *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{report: reportUC}
}

// StockReportPDF godoc
// @Summary      Reporte de existencias en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockReportPDF(c *fiber.Ctx) error {
	data, err := h.report.GenerateStockReportPDF(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := fmt.Sprintf("existencias-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

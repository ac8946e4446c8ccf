package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chocodealers/ledger-api/internal/application/dto"
	"github.com/chocodealers/ledger-api/internal/application/ledger"
)

// ProductionHandler maneja las corridas de producción (protegido).
type ProductionHandler struct {
	produce *ledger.ProduceUseCase
	history *ledger.HistoryUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(produce *ledger.ProduceUseCase, history *ledger.HistoryUseCase) *ProductionHandler {
	return &ProductionHandler{produce: produce, history: history}
}

// Produce godoc
// @Summary      Registrar una corrida de producción
// @Description  Debita cada ingrediente de la receta y acredita el producto
// @Description  terminado en una sola transacción; si falta un ingrediente,
// @Description  nada se persiste.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProduceRequest  true  "product_id, quantity, note"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Produce(c *fiber.Ctx) error {
	var in dto.ProduceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.produce.Produce(c.Context(), ledger.ProduceInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Actor:     GetActor(c),
		Note:      in.Note,
	})
	if err != nil {
		return ledgerError(c, err)
	}

	deductions := make([]dto.DeductionLineResponse, 0, len(result.Deductions))
	for _, d := range result.Deductions {
		deductions = append(deductions, dto.DeductionLineResponse{
			IngredientID:   d.IngredientID,
			IngredientName: d.IngredientName,
			Amount:         d.Amount,
			Display:        d.Display,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductionResponse{
		EventID:          result.EventID,
		ProductID:        result.ProductID,
		ProductName:      result.ProductName,
		QuantityProduced: result.QuantityProduced,
		NewStock:         result.NewStock,
		Deductions:       deductions,
	})
}

// GetEvent godoc
// @Summary      Entradas del ledger de una corrida de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        eventId  path  string  true  "ID del evento de producción"
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/production/{eventId} [get]
func (h *ProductionHandler) GetEvent(c *fiber.Ctx) error {
	entries, err := h.history.ListByProductionEvent(c.Context(), c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(entries), "entries": entries})
}

package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chocodealers/ledger-api/internal/application/dto"
	"github.com/chocodealers/ledger-api/internal/application/ledger"
	"github.com/chocodealers/ledger-api/internal/domain"
)

// LedgerHandler maneja movimientos, correcciones y consultas del ledger (protegido).
type LedgerHandler struct {
	apply   *ledger.ApplyUseCase
	history *ledger.HistoryUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(apply *ledger.ApplyUseCase, history *ledger.HistoryUseCase) *LedgerHandler {
	return &LedgerHandler{apply: apply, history: history}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock (ADD o CONSUME)
// @Description  quantity+unit van en la unidad del usuario ("5", "kg"); el
// @Description  servidor los normaliza a la unidad canónica del artículo.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "item_id, action, quantity, unit, note"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *LedgerHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, display, err := h.apply.ApplyRaw(c.Context(), ledger.RawMovementInput{
		ItemID: in.ItemID,
		Action: in.Action,
		Value:  in.Quantity,
		Unit:   in.Unit,
		Actor:  GetActor(c),
		Note:   in.Note,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	resp := ledger.ToEntryResponse(entry)
	resp.Display = display
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RegisterCorrection godoc
// @Summary      Corrección manual a un recuento físico (solo manager/admin)
// @Description  quantity es el recuento absoluto contado, no un delta; puede
// @Description  dejar el stock por debajo del registrado, nunca negativo.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CorrectionRequest  true  "item_id, quantity, unit, note"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/corrections [post]
func (h *LedgerHandler) RegisterCorrection(c *fiber.Ctx) error {
	var in dto.CorrectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, display, err := h.apply.CorrectRaw(c.Context(), ledger.RawCorrectionInput{
		ItemID: in.ItemID,
		Value:  in.Quantity,
		Unit:   in.Unit,
		Actor:  GetActor(c),
		Note:   in.Note,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	resp := ledger.ToEntryResponse(entry)
	resp.Display = display
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListRecent godoc
// @Summary      Últimas entradas del registro de auditoría
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. entradas (default 100)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.LedgerEntryResponse
// @Router       /api/ledger [get]
func (h *LedgerHandler) ListRecent(c *fiber.Ctx) error {
	entries, err := h.history.ListRecent(c.Context(), c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(entries), "entries": entries})
}

// ListByItem godoc
// @Summary      Histórico del ledger de un artículo
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del artículo"
// @Param        from    query  string  false  "desde (RFC 3339)"
// @Param        to      query  string  false  "hasta (RFC 3339)"
// @Param        limit   query  int     false  "máx. entradas (default 100)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/ledger [get]
func (h *LedgerHandler) ListByItem(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
	}
	entries, err := h.history.ListByItem(c.Context(), c.Params("id"), from, to,
		c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(entries), "entries": entries})
}

// ledgerError mapea los errores del dominio de stock a estados HTTP.
func ledgerError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":      "INSUFFICIENT_STOCK",
			"message":   insufficient.Error(),
			"item_id":   insufficient.ItemID,
			"item_name": insufficient.ItemName,
			"requested": insufficient.Requested,
			"available": insufficient.Available,
		})
	}
	var unrecognized *domain.UnrecognizedUnitError
	if errors.As(err, &unrecognized) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNRECOGNIZED_UNIT", Message: unrecognized.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
	case errors.Is(err, domain.ErrNoRecipeDefined):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_RECIPE", Message: "el producto no tiene receta definida"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad inválida"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

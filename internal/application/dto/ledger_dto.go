package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity+Unit van en la unidad que el usuario ingresó; el servidor los
// normaliza a la unidad canónica del artículo antes de aplicar el delta.
type RegisterMovementRequest struct {
	ItemID   string          `json:"item_id" validate:"required,uuid"`
	Action   string          `json:"action" validate:"required,oneof=ADD CONSUME"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
	Unit     string          `json:"unit" validate:"required"`
	Note     string          `json:"note" validate:"omitempty,max=500"`
}

// CorrectionRequest body para POST /api/inventory/corrections. Quantity es el
// recuento físico absoluto, no un delta.
type CorrectionRequest struct {
	ItemID   string          `json:"item_id" validate:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
	Unit     string          `json:"unit" validate:"required"`
	Note     string          `json:"note" validate:"omitempty,max=500"`
}

// ProduceRequest body para POST /api/production.
type ProduceRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Note      string `json:"note" validate:"omitempty,max=500"`
}

// LedgerEntryResponse salida de una entrada del registro de auditoría.
type LedgerEntryResponse struct {
	ID                string          `json:"id"`
	ItemID            string          `json:"item_id"`
	ItemName          string          `json:"item_name"`
	Action            string          `json:"action"`
	Delta             decimal.Decimal `json:"delta"`
	QuantityBefore    decimal.Decimal `json:"quantity_before"`
	QuantityAfter     decimal.Decimal `json:"quantity_after"`
	Actor             string          `json:"actor"`
	Note              string          `json:"note,omitempty"`
	ProductionEventID *string         `json:"production_event_id,omitempty"`
	Display           string          `json:"display,omitempty"` // eco canónico + entrada original
	CreatedAt         time.Time       `json:"created_at"`
}

// DeductionLineResponse una línea del reporte de producción, en orden de receta.
type DeductionLineResponse struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Amount         decimal.Decimal `json:"amount"`
	Display        string          `json:"display"`
}

// ProductionResponse salida de POST /api/production.
type ProductionResponse struct {
	EventID          string                  `json:"event_id"`
	ProductID        string                  `json:"product_id"`
	ProductName      string                  `json:"product_name"`
	QuantityProduced int64                   `json:"quantity_produced"`
	NewStock         decimal.Decimal         `json:"new_stock"`
	Deductions       []DeductionLineResponse `json:"deductions"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	SKU              string           `json:"sku" validate:"required,max=64"`
	Name             string           `json:"name" validate:"required,max=200"`
	Category         string           `json:"category" validate:"omitempty,max=100"`
	CanonicalUnit    string           `json:"canonical_unit" validate:"required,oneof=GRAM PIECE"`
	PieceWeightGrams *decimal.Decimal `json:"piece_weight_grams,omitempty"`
	UnitsPerPackage  *int64           `json:"units_per_package,omitempty"`
	MinStock         decimal.Decimal  `json:"min_stock"`
}

// ItemResponse salida de un artículo del catálogo.
type ItemResponse struct {
	ID               string           `json:"id"`
	SKU              string           `json:"sku"`
	Name             string           `json:"name"`
	Category         string           `json:"category"`
	CanonicalUnit    string           `json:"canonical_unit"`
	CurrentStock     decimal.Decimal  `json:"current_stock"`
	StockDisplay     string           `json:"stock_display"` // ej. "5kg", "100 pieces"
	PieceWeightGrams *decimal.Decimal `json:"piece_weight_grams,omitempty"`
	UnitsPerPackage  *int64           `json:"units_per_package,omitempty"`
	MinStock         decimal.Decimal  `json:"min_stock"`
	IsActive         bool             `json:"is_active"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// LowStockItemDTO un artículo bajo su umbral mínimo, con el déficit calculado.
type LowStockItemDTO struct {
	ItemID       string          `json:"item_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Deficit      decimal.Decimal `json:"deficit"` // MinStock - CurrentStock
	StockDisplay string          `json:"stock_display"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidad canónica de almacenamiento de un artículo.
// Todo el stock se persiste en esta unidad, sin importar la unidad de entrada.
const (
	UnitGram  = "GRAM"  // masa en gramos
	UnitPiece = "PIECE" // conteo por unidades
)

// Item representa un artículo del inventario: ingrediente crudo o producto
// terminado, ambos participan del ledger de forma idéntica.
// CurrentStock solo se muta a través del Stock Ledger (nunca directo).
type Item struct {
	ID            string
	SKU           string // código único
	Name          string
	Category      string
	CanonicalUnit string          // UnitGram | UnitPiece
	CurrentStock  decimal.Decimal // invariante: >= 0
	// PieceWeightGrams ("grammovka"): gramos por pieza. Permite razonar en
	// piezas un artículo almacenado en gramos. Nil si no aplica.
	PieceWeightGrams *decimal.Decimal
	// UnitsPerPackage: piezas por caja/pack para entradas por paquete. Nil si no aplica.
	UnitsPerPackage *int64
	MinStock         decimal.Decimal // umbral de stock bajo (unidad canónica)
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsPieceBased indica si el artículo se almacena por conteo de piezas.
func (i *Item) IsPieceBased() bool { return i.CanonicalUnit == UnitPiece }

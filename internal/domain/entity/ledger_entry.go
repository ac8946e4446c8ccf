package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de acción del ledger.
const (
	ActionADD           = "ADD"            // compra / reposición
	ActionCONSUME       = "CONSUME"        // consumo / venta
	ActionProductionIn  = "PRODUCTION_IN"  // alta de producto terminado
	ActionProductionOut = "PRODUCTION_OUT" // baja de ingrediente por producción
	ActionCORRECTION    = "CORRECTION"     // ajuste manual a un recuento físico
)

// LedgerEntry es un registro inmutable de auditoría: una mutación de stock
// de un artículo. Se escribe en la misma transacción que la mutación y es la
// fuente de verdad para reconciliación; nunca se edita ni se borra.
type LedgerEntry struct {
	ID             string
	ItemID         string
	ItemName       string // desnormalizado para el histórico
	Action         string
	Delta          decimal.Decimal // con signo, unidad canónica
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Actor          string // identidad opaca provista por el caller
	Note           string
	// ProductionEventID enlaza todas las entradas creadas por una misma
	// corrida de producción. Nil para acciones fuera de producción.
	ProductionEventID *string
	CreatedAt         time.Time
}

package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chocodealers/ledger-api/internal/domain/entity"
	"github.com/chocodealers/ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del ledger: todos los
// cambios de fn se confirman juntos o se revierten juntos, y una cancelación
// de ctx antes del commit no deja nada persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		recipeRepo repository.RecipeRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}

// StockNotifier es el puerto de salida hacia el espejo de inventario externo
// (POS). Se invoca después del commit, best effort: su fallo jamás revierte
// la mutación del ledger.
type StockNotifier interface {
	NotifyStockChange(ctx context.Context, item *entity.Item, newQuantity decimal.Decimal) error
}

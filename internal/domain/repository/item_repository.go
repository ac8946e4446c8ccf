package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chocodealers/ledger-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para el catálogo de artículos.
// El core del ledger solo usa el camino de lectura más UpdateStock dentro de
// una transacción; nadie más escribe current_stock.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) para el
	// read-modify-write del ledger. Solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// UpdateStock fija current_stock. Solo el Stock Ledger la invoca, siempre
	// dentro de la misma transacción que escribe el LedgerEntry.
	UpdateStock(ctx context.Context, id string, quantity decimal.Decimal) error
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Item, error)
	// ListBelowMinStock devuelve artículos activos con stock bajo el umbral,
	// ordenados por déficit descendente.
	ListBelowMinStock(ctx context.Context) ([]*entity.Item, error)
}

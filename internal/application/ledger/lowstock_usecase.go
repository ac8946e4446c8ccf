package ledger

import (
	"context"

	"github.com/chocodealers/ledger-api/internal/application/dto"
	"github.com/chocodealers/ledger-api/internal/domain/repository"
	"github.com/chocodealers/ledger-api/internal/domain/units"
)

// LowStockUseCase lista los artículos bajo su umbral mínimo para la señal de
// reposición. Lectura pura: no toca el ledger.
type LowStockUseCase struct {
	itemRepo repository.ItemRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(itemRepo repository.ItemRepository) *LowStockUseCase {
	return &LowStockUseCase{itemRepo: itemRepo}
}

// ListLowStock devuelve los artículos activos con stock bajo min_stock,
// ordenados por déficit descendente (mayor quiebre primero).
func (uc *LowStockUseCase) ListLowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	items, err := uc.itemRepo.ListBelowMinStock(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.LowStockItemDTO{
			ItemID:       item.ID,
			SKU:          item.SKU,
			Name:         item.Name,
			CurrentStock: item.CurrentStock,
			MinStock:     item.MinStock,
			Deficit:      item.MinStock.Sub(item.CurrentStock),
			StockDisplay: units.FormatQuantity(item, item.CurrentStock),
		})
	}
	return out, nil
}

package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chocodealers/ledger-api/internal/domain"
	"github.com/chocodealers/ledger-api/internal/domain/entity"
	"github.com/chocodealers/ledger-api/internal/domain/repository"
	"github.com/chocodealers/ledger-api/internal/domain/units"
)

// ProduceUseCase expande un evento de producción en la transacción atómica
// completa: un PRODUCTION_OUT por ingrediente de la receta más un
// PRODUCTION_IN del producto terminado, todos enlazados por un mismo
// production-event id. Si cualquier débito falla, nada se persiste.
type ProduceUseCase struct {
	txRunner TxRunner
	notifier StockNotifier // puede ser nil
}

// NewProduceUseCase construye el caso de uso.
func NewProduceUseCase(txRunner TxRunner, notifier StockNotifier) *ProduceUseCase {
	return &ProduceUseCase{txRunner: txRunner, notifier: notifier}
}

// ProduceInput entrada de una corrida de producción.
type ProduceInput struct {
	ProductID string
	Quantity  int64 // unidades producidas, > 0
	Actor     string
	Note      string
}

// DeductionLine una línea del reporte de descuento, en orden de receta.
type DeductionLine struct {
	IngredientID   string
	IngredientName string
	Amount         decimal.Decimal // unidad canónica del ingrediente
	Display        string          // ej. "500g", "10 pieces"
}

// ProductionResult resultado de una producción confirmada.
type ProductionResult struct {
	EventID          string
	ProductID        string
	ProductName      string
	QuantityProduced int64
	NewStock         decimal.Decimal // stock del producto terminado tras el crédito
	Deductions       []DeductionLine
}

// Produce ejecuta una corrida de producción. Los débitos de ingredientes se
// aplican en orden ascendente de id de ingrediente (orden fijo de locks, para
// que dos producciones concurrentes que compartan ingredientes no se
// bloqueen en círculo) y el primer ingrediente insuficiente en ese orden es
// el que se reporta: fallo determinista, no dependiente del timing.
func (uc *ProduceUseCase) Produce(ctx context.Context, in ProduceInput) (*ProductionResult, error) {
	if in.ProductID == "" || in.Actor == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	eventID := uuid.New().String()
	qty := decimal.NewFromInt(in.Quantity)
	now := time.Now()

	var (
		result  *ProductionResult
		product *entity.Item
	)
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		recipeRepo repository.RecipeRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		p, err := itemRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrItemNotFound
		}

		lines, err := recipeRepo.ListByProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrNoRecipeDefined
		}

		// Débitos en orden ascendente de id de ingrediente (orden de locks).
		ordered := make([]*entity.RecipeLine, len(lines))
		copy(ordered, lines)
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].IngredientID < ordered[j].IngredientID
		})

		deducted := make(map[string]DeductionLine, len(ordered))
		for _, line := range ordered {
			required := line.AmountPerUnit.Mul(qty)
			_, ing, err := applyMovement(ctx, itemRepo, ledgerRepo, movement{
				itemID:  line.IngredientID,
				action:  entity.ActionProductionOut,
				delta:   required.Neg(),
				actor:   in.Actor,
				note:    in.Note,
				eventID: &eventID,
				now:     now,
			})
			if err != nil {
				return err
			}
			deducted[line.IngredientID] = DeductionLine{
				IngredientID:   ing.ID,
				IngredientName: ing.Name,
				Amount:         required,
				Display:        units.FormatQuantity(ing, required),
			}
		}

		// Crédito del producto terminado, mismo event id.
		_, p, err = applyMovement(ctx, itemRepo, ledgerRepo, movement{
			itemID:  in.ProductID,
			action:  entity.ActionProductionIn,
			delta:   qty,
			actor:   in.Actor,
			note:    in.Note,
			eventID: &eventID,
			now:     now,
		})
		if err != nil {
			return err
		}
		product = p

		// Reporte en orden de receta, no en orden de locks.
		deductions := make([]DeductionLine, 0, len(lines))
		for _, line := range lines {
			deductions = append(deductions, deducted[line.IngredientID])
		}
		result = &ProductionResult{
			EventID:          eventID,
			ProductID:        p.ID,
			ProductName:      p.Name,
			QuantityProduced: in.Quantity,
			NewStock:         p.CurrentStock,
			Deductions:       deductions,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// El espejo POS solo vende producto terminado.
	notifyMirror(ctx, uc.notifier, product)
	return result, nil
}

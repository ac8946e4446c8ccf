package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/chocodealers/ledger-api/internal/domain"
	"github.com/chocodealers/ledger-api/internal/domain/entity"
	"github.com/chocodealers/ledger-api/internal/domain/repository"
	"github.com/chocodealers/ledger-api/internal/domain/units"
)

// ApplyUseCase aplica deltas de stock de un solo artículo de forma
// transaccional (ADD, CONSUME, CORRECTION) con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback. Es el único escritor de
// Item.CurrentStock; cada mutación deja exactamente un LedgerEntry en la
// misma transacción.
type ApplyUseCase struct {
	txRunner TxRunner
	notifier StockNotifier // puede ser nil (sin espejo POS configurado)
}

// NewApplyUseCase construye el caso de uso.
func NewApplyUseCase(txRunner TxRunner, notifier StockNotifier) *ApplyUseCase {
	return &ApplyUseCase{txRunner: txRunner, notifier: notifier}
}

// ApplyInput entrada para un movimiento simple. Quantity es la magnitud
// positiva en la unidad canónica del artículo; el signo lo decide Action.
type ApplyInput struct {
	ItemID   string
	Action   string // entity.ActionADD | entity.ActionCONSUME
	Quantity decimal.Decimal
	Actor    string
	Note     string
}

// CorrectionInput entrada para una corrección manual: el caller entrega la
// cantidad absoluta contada físicamente, no un delta. El delta con signo se
// deriva internamente y puede ser negativo.
type CorrectionInput struct {
	ItemID      string
	NewQuantity decimal.Decimal // unidad canónica, >= 0
	Actor       string
	Note        string
}

// Apply registra un ADD o CONSUME: bloquea la fila del artículo, verifica el
// invariante de stock no negativo, actualiza el stock y escribe el
// LedgerEntry, todo en una transacción. Un CONSUME que dejaría el stock en
// negativo falla con InsufficientStockError sin efecto alguno.
func (uc *ApplyUseCase) Apply(ctx context.Context, in ApplyInput) (*entity.LedgerEntry, error) {
	if in.ItemID == "" || in.Actor == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Action != entity.ActionADD && in.Action != entity.ActionCONSUME {
		return nil, domain.ErrInvalidInput
	}
	// Cero solo tiene sentido en correcciones.
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}

	delta := in.Quantity
	if in.Action == entity.ActionCONSUME {
		delta = delta.Neg()
	}

	var (
		entry   *entity.LedgerEntry
		updated *entity.Item
	)
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.RecipeRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		var err error
		entry, updated, err = applyMovement(ctx, itemRepo, ledgerRepo, movement{
			itemID: in.ItemID,
			action: in.Action,
			delta:  delta,
			actor:  in.Actor,
			note:   in.Note,
			now:    time.Now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	notifyMirror(ctx, uc.notifier, updated)
	return entry, nil
}

// Correct ajusta el stock de un artículo a un recuento físico absoluto.
// El resultado puede ser menor que el stock registrado (las correcciones
// bajan stock); la entrada del ledger conserva delta derivado y before/after.
func (uc *ApplyUseCase) Correct(ctx context.Context, in CorrectionInput) (*entity.LedgerEntry, error) {
	if in.ItemID == "" || in.Actor == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.NewQuantity.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}

	var (
		entry   *entity.LedgerEntry
		updated *entity.Item
	)
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.RecipeRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		before := item.CurrentStock
		if err := itemRepo.UpdateStock(ctx, item.ID, in.NewQuantity); err != nil {
			return err
		}
		item.CurrentStock = in.NewQuantity
		entry = &entity.LedgerEntry{
			ID:             uuid.New().String(),
			ItemID:         item.ID,
			ItemName:       item.Name,
			Action:         entity.ActionCORRECTION,
			Delta:          in.NewQuantity.Sub(before),
			QuantityBefore: before,
			QuantityAfter:  in.NewQuantity,
			Actor:          in.Actor,
			Note:           in.Note,
			CreatedAt:      time.Now(),
		}
		updated = item
		return ledgerRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	notifyMirror(ctx, uc.notifier, updated)
	return entry, nil
}

// RawMovementInput movimiento con cantidad en la unidad ingresada por el
// usuario ("5kg", "2 boxes"); se normaliza a la unidad canónica del artículo
// dentro de la transacción, con la fila ya bloqueada.
type RawMovementInput struct {
	ItemID string
	Action string // entity.ActionADD | entity.ActionCONSUME
	Value  decimal.Decimal
	Unit   string
	Actor  string
	Note   string
}

// RawCorrectionInput corrección con el recuento físico en la unidad ingresada.
type RawCorrectionInput struct {
	ItemID string
	Value  decimal.Decimal
	Unit   string
	Actor  string
	Note   string
}

// ApplyRaw normaliza la cantidad ingresada a la unidad canónica del artículo
// y aplica el movimiento. Devuelve además el eco de conversión legible
// (ej. "5000g (5kg)") para que el caller confirme qué entendió el sistema.
func (uc *ApplyUseCase) ApplyRaw(ctx context.Context, in RawMovementInput) (*entity.LedgerEntry, string, error) {
	if in.ItemID == "" || in.Actor == "" {
		return nil, "", domain.ErrInvalidInput
	}
	if in.Action != entity.ActionADD && in.Action != entity.ActionCONSUME {
		return nil, "", domain.ErrInvalidInput
	}

	var (
		entry   *entity.LedgerEntry
		updated *entity.Item
		display string
	)
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.RecipeRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		canonical, echo, err := units.Normalize(item, in.Value, in.Unit)
		if err != nil {
			return err
		}
		if !canonical.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidQuantity
		}
		delta := canonical
		if in.Action == entity.ActionCONSUME {
			delta = delta.Neg()
		}
		display = echo
		entry, updated, err = applyLockedMovement(ctx, itemRepo, ledgerRepo, item, movement{
			itemID: item.ID,
			action: in.Action,
			delta:  delta,
			actor:  in.Actor,
			note:   in.Note,
			now:    time.Now(),
		})
		return err
	})
	if err != nil {
		return nil, "", err
	}

	notifyMirror(ctx, uc.notifier, updated)
	return entry, display, nil
}

// CorrectRaw normaliza el recuento físico ingresado y ajusta el stock a ese
// valor absoluto. Acepta cero (estante vacío).
func (uc *ApplyUseCase) CorrectRaw(ctx context.Context, in RawCorrectionInput) (*entity.LedgerEntry, string, error) {
	if in.ItemID == "" || in.Actor == "" {
		return nil, "", domain.ErrInvalidInput
	}

	var (
		entry   *entity.LedgerEntry
		updated *entity.Item
		display string
	)
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.RecipeRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		canonical, echo, err := units.Normalize(item, in.Value, in.Unit)
		if err != nil {
			return err
		}
		display = echo
		before := item.CurrentStock
		if err := itemRepo.UpdateStock(ctx, item.ID, canonical); err != nil {
			return err
		}
		item.CurrentStock = canonical
		entry = &entity.LedgerEntry{
			ID:             uuid.New().String(),
			ItemID:         item.ID,
			ItemName:       item.Name,
			Action:         entity.ActionCORRECTION,
			Delta:          canonical.Sub(before),
			QuantityBefore: before,
			QuantityAfter:  canonical,
			Actor:          in.Actor,
			Note:           in.Note,
			CreatedAt:      time.Now(),
		}
		updated = item
		return ledgerRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, "", err
	}

	notifyMirror(ctx, uc.notifier, updated)
	return entry, display, nil
}

// movement parámetros internos de un delta ya firmado.
type movement struct {
	itemID  string
	action  string
	delta   decimal.Decimal // con signo
	actor   string
	note    string
	eventID *string // solo PRODUCTION_*
	now     time.Time
}

// applyMovement ejecuta el read-modify-write de un artículo dentro de la tx
// del caller: bloquea la fila, verifica el invariante de no-negatividad,
// actualiza el stock e inserta el LedgerEntry. Lo comparten Apply y Produce.
func applyMovement(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	ledgerRepo repository.LedgerRepository,
	m movement,
) (*entity.LedgerEntry, *entity.Item, error) {
	item, err := itemRepo.GetForUpdate(ctx, m.itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, domain.ErrItemNotFound
	}
	return applyLockedMovement(ctx, itemRepo, ledgerRepo, item, m)
}

// applyLockedMovement igual que applyMovement pero con la fila del artículo
// ya bloqueada por el caller (necesario cuando el delta se deriva del propio
// artículo, como en la normalización de unidades).
func applyLockedMovement(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	ledgerRepo repository.LedgerRepository,
	item *entity.Item,
	m movement,
) (*entity.LedgerEntry, *entity.Item, error) {
	before := item.CurrentStock
	after := before.Add(m.delta)
	if after.IsNegative() {
		return nil, nil, &domain.InsufficientStockError{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Requested: m.delta.Neg(),
			Available: before,
		}
	}

	if err := itemRepo.UpdateStock(ctx, item.ID, after); err != nil {
		return nil, nil, err
	}
	item.CurrentStock = after

	entry := &entity.LedgerEntry{
		ID:                uuid.New().String(),
		ItemID:            item.ID,
		ItemName:          item.Name,
		Action:            m.action,
		Delta:             m.delta,
		QuantityBefore:    before,
		QuantityAfter:     after,
		Actor:             m.actor,
		Note:              m.note,
		ProductionEventID: m.eventID,
		CreatedAt:         m.now,
	}
	if err := ledgerRepo.Create(ctx, entry); err != nil {
		return nil, nil, err
	}
	return entry, item, nil
}

// notifyMirror avisa al espejo POS después del commit. Best effort: el fallo
// solo se registra en el log, la mutación ya confirmada no se toca.
func notifyMirror(ctx context.Context, notifier StockNotifier, item *entity.Item) {
	if notifier == nil || item == nil {
		return
	}
	if err := notifier.NotifyStockChange(ctx, item, item.CurrentStock); err != nil {
		log.Warn().Err(err).
			Str("item_id", item.ID).
			Str("item", item.Name).
			Msg("notificación al espejo POS falló")
	}
}

package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chocodealers/ledger-api/internal/application/ledger"
	"github.com/chocodealers/ledger-api/internal/domain"
	"github.com/chocodealers/ledger-api/internal/domain/entity"
)

func setupApply(items ...*entity.Item) (*ledger.ApplyUseCase, *memStore, *spyNotifier) {
	store := newMemStore()
	for _, it := range items {
		cp := *it
		store.items[it.ID] = &cp
	}
	notifier := &spyNotifier{}
	uc := ledger.NewApplyUseCase(&memTxRunner{store: store}, notifier)
	return uc, store, notifier
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply: ADD / CONSUME
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: Sugar con 5000 g, CONSUME 2000 g → stock 3000 g y una entrada
// con before=5000, after=3000.
func TestApply_ConsumeReducesStock(t *testing.T) {
	uc, store, _ := setupApply(gramIngredient("sugar", "Sugar", "5000"))

	entry, err := uc.Apply(context.Background(), ledger.ApplyInput{
		ItemID: "sugar", Action: entity.ActionCONSUME, Quantity: dec("2000"), Actor: "thei",
	})
	require.NoError(t, err)

	assert.True(t, store.items["sugar"].CurrentStock.Equal(dec("3000")))
	assert.Equal(t, entity.ActionCONSUME, entry.Action)
	assert.True(t, entry.Delta.Equal(dec("-2000")))
	assert.True(t, entry.QuantityBefore.Equal(dec("5000")))
	assert.True(t, entry.QuantityAfter.Equal(dec("3000")))
	assert.Equal(t, "thei", entry.Actor)
	assert.Nil(t, entry.ProductionEventID)
	require.Len(t, store.entries, 1)
}

func TestApply_AddIncreasesStock(t *testing.T) {
	uc, store, _ := setupApply(gramIngredient("cacao", "Cacao Mass", "1000"))

	entry, err := uc.Apply(context.Background(), ledger.ApplyInput{
		ItemID: "cacao", Action: entity.ActionADD, Quantity: dec("5000"), Actor: "nu",
		Note: "5000g (5kg)",
	})
	require.NoError(t, err)

	assert.True(t, store.items["cacao"].CurrentStock.Equal(dec("6000")))
	assert.True(t, entry.Delta.Equal(dec("5000")))
	assert.Equal(t, "5000g (5kg)", entry.Note)
}

// El invariante: un CONSUME que dejaría stock negativo falla con
// InsufficientStockError y no tiene ningún efecto (ni stock ni ledger).
func TestApply_InsufficientStockIsAtomicNoop(t *testing.T) {
	uc, store, notifier := setupApply(gramIngredient("sugar", "Sugar", "300"))

	_, err := uc.Apply(context.Background(), ledger.ApplyInput{
		ItemID: "sugar", Action: entity.ActionCONSUME, Quantity: dec("500"), Actor: "thei",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Sugar", stockErr.ItemName)
	assert.True(t, stockErr.Requested.Equal(dec("500")))
	assert.True(t, stockErr.Available.Equal(dec("300")))

	assert.True(t, store.items["sugar"].CurrentStock.Equal(dec("300")), "stock intacto")
	assert.Empty(t, store.entries, "sin entrada de ledger")
	assert.Empty(t, notifier.calls, "sin notificación al espejo")
}

func TestApply_ItemNotFound(t *testing.T) {
	uc, _, _ := setupApply()
	_, err := uc.Apply(context.Background(), ledger.ApplyInput{
		ItemID: "nope", Action: entity.ActionADD, Quantity: dec("1"), Actor: "thei",
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestApply_RejectsInvalidInput(t *testing.T) {
	uc, _, _ := setupApply(gramIngredient("sugar", "Sugar", "100"))
	ctx := context.Background()

	_, err := uc.Apply(ctx, ledger.ApplyInput{ItemID: "sugar", Action: "TRANSFER", Quantity: dec("1"), Actor: "a"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Apply(ctx, ledger.ApplyInput{ItemID: "sugar", Action: entity.ActionADD, Quantity: decimal.Zero, Actor: "a"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Apply(ctx, ledger.ApplyInput{ItemID: "sugar", Action: entity.ActionADD, Quantity: dec("1"), Actor: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Correct
// ──────────────────────────────────────────────────────────────────────────────

// Una corrección puede bajar el stock registrado a un recuento físico menor;
// la entrada conserva el delta derivado y before/after.
func TestCorrect_DecreasesToRecount(t *testing.T) {
	uc, store, _ := setupApply(gramIngredient("vanilla", "Vanilla Extract", "500"))

	entry, err := uc.Correct(context.Background(), ledger.CorrectionInput{
		ItemID: "vanilla", NewQuantity: dec("430"), Actor: "admin", Note: "recuento mensual",
	})
	require.NoError(t, err)

	assert.True(t, store.items["vanilla"].CurrentStock.Equal(dec("430")))
	assert.Equal(t, entity.ActionCORRECTION, entry.Action)
	assert.True(t, entry.Delta.Equal(dec("-70")))
	assert.True(t, entry.QuantityBefore.Equal(dec("500")))
	assert.True(t, entry.QuantityAfter.Equal(dec("430")))
}

// Cero es un recuento válido (estante vacío).
func TestCorrect_ToZero(t *testing.T) {
	uc, store, _ := setupApply(pieceIngredient("stick", "Ice Cream Stick", "12"))

	entry, err := uc.Correct(context.Background(), ledger.CorrectionInput{
		ItemID: "stick", NewQuantity: decimal.Zero, Actor: "admin",
	})
	require.NoError(t, err)
	assert.True(t, store.items["stick"].CurrentStock.IsZero())
	assert.True(t, entry.Delta.Equal(dec("-12")))
}

func TestCorrect_RejectsNegative(t *testing.T) {
	uc, _, _ := setupApply(gramIngredient("sugar", "Sugar", "100"))
	_, err := uc.Correct(context.Background(), ledger.CorrectionInput{
		ItemID: "sugar", NewQuantity: dec("-5"), Actor: "admin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificación post-commit al espejo POS
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_NotifiesMirrorAfterCommit(t *testing.T) {
	uc, _, notifier := setupApply(gramIngredient("sugar", "Sugar", "5000"))

	_, err := uc.Apply(context.Background(), ledger.ApplyInput{
		ItemID: "sugar", Action: entity.ActionCONSUME, Quantity: dec("2000"), Actor: "thei",
	})
	require.NoError(t, err)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "sugar", notifier.calls[0].itemID)
	assert.True(t, notifier.calls[0].quantity.Equal(dec("3000")))
}

// El espejo es best effort: su fallo no revierte ni hace fallar la mutación.
func TestApply_MirrorFailureDoesNotRollBack(t *testing.T) {
	store := newMemStore()
	store.items["sugar"] = gramIngredient("sugar", "Sugar", "5000")
	notifier := &spyNotifier{err: errors.New("square: timeout")}
	uc := ledger.NewApplyUseCase(&memTxRunner{store: store}, notifier)

	entry, err := uc.Apply(context.Background(), ledger.ApplyInput{
		ItemID: "sugar", Action: entity.ActionADD, Quantity: dec("100"), Actor: "thei",
	})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, store.items["sugar"].CurrentStock.Equal(dec("5100")))
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyRaw / CorrectRaw: normalización de unidades dentro de la transacción
// ──────────────────────────────────────────────────────────────────────────────

// ADD de "5 kg" sobre un artículo en gramos: entra como 5000 g con eco de
// conversión para la respuesta HTTP.
func TestApplyRaw_NormalizaKilosAGramos(t *testing.T) {
	uc, store, _ := setupApply(gramIngredient("sugar", "Sugar", "1000"))

	entry, display, err := uc.ApplyRaw(context.Background(), ledger.RawMovementInput{
		ItemID: "sugar", Action: entity.ActionADD, Value: dec("5"), Unit: "kg", Actor: "nu",
	})
	require.NoError(t, err)

	assert.Equal(t, "5000g (5kg)", display)
	assert.True(t, entry.Delta.Equal(dec("5000")))
	assert.True(t, store.items["sugar"].CurrentStock.Equal(dec("6000")))
}

// Una caja de un artículo con desglose por paquete y peso por pieza entra en gramos.
func TestApplyRaw_NormalizaCajasAGramos(t *testing.T) {
	weight := dec("12.5")
	perPack := int64(24)
	bonbon := gramIngredient("bonbon", "Dark Bonbon", "0")
	bonbon.PieceWeightGrams = &weight
	bonbon.UnitsPerPackage = &perPack
	uc, store, _ := setupApply(bonbon)

	entry, display, err := uc.ApplyRaw(context.Background(), ledger.RawMovementInput{
		ItemID: "bonbon", Action: entity.ActionADD, Value: dec("2"), Unit: "boxes", Actor: "nu",
	})
	require.NoError(t, err)

	assert.Equal(t, "600g (2 packages, 48 pieces)", display)
	assert.True(t, entry.QuantityAfter.Equal(dec("600")))
	assert.True(t, store.items["bonbon"].CurrentStock.Equal(dec("600")))
}

// Una unidad irresoluble aborta la transacción: sin movimiento y sin entrada.
func TestApplyRaw_UnidadDesconocidaNoDejaRastro(t *testing.T) {
	uc, store, notifier := setupApply(gramIngredient("sugar", "Sugar", "1000"))

	_, _, err := uc.ApplyRaw(context.Background(), ledger.RawMovementInput{
		ItemID: "sugar", Action: entity.ActionCONSUME, Value: dec("3"), Unit: "fortnights", Actor: "nu",
	})

	var unitErr *domain.UnrecognizedUnitError
	require.ErrorAs(t, err, &unitErr)
	assert.Equal(t, "fortnights", unitErr.Unit)
	assert.True(t, store.items["sugar"].CurrentStock.Equal(dec("1000")))
	assert.Empty(t, store.entries)
	assert.Empty(t, notifier.calls)
}

// Corrección con recuento en kilos: el stock queda en el absoluto normalizado.
func TestCorrectRaw_RecuentoEnKilos(t *testing.T) {
	uc, store, _ := setupApply(gramIngredient("cacao", "Cacao Nibs", "8000"))

	entry, display, err := uc.CorrectRaw(context.Background(), ledger.RawCorrectionInput{
		ItemID: "cacao", Value: dec("7.5"), Unit: "kg", Actor: "greta", Note: "recuento mensual",
	})
	require.NoError(t, err)

	assert.Equal(t, "7500g (7.5kg)", display)
	assert.Equal(t, entity.ActionCORRECTION, entry.Action)
	assert.True(t, entry.Delta.Equal(dec("-500")))
	assert.True(t, store.items["cacao"].CurrentStock.Equal(dec("7500")))
}

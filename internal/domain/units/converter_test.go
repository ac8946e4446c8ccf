package units_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chocodealers/ledger-api/internal/domain"
	"github.com/chocodealers/ledger-api/internal/domain/entity"
	"github.com/chocodealers/ledger-api/internal/domain/units"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func gramItem() *entity.Item {
	return &entity.Item{ID: "i1", Name: "Coconut Meat", CanonicalUnit: entity.UnitGram}
}

func pieceItem() *entity.Item {
	return &entity.Item{ID: "i2", Name: "Ice Cream Stick", CanonicalUnit: entity.UnitPiece}
}

// chocolateBar: se almacena en gramos pero el personal cuenta piezas de 100 g,
// empacadas de a 20 por caja.
func chocolateBar() *entity.Item {
	pw := decimal.NewFromInt(100)
	upp := int64(20)
	return &entity.Item{
		ID: "i3", Name: "Chocolate Bar 70%", CanonicalUnit: entity.UnitGram,
		PieceWeightGrams: &pw, UnitsPerPackage: &upp,
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Unidades de masa y volumen
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalize_MassUnits(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		unit    string
		grams   string
		display string
	}{
		{"kilogramos", "5", "kg", "5000", "5000g (5kg)"},
		{"kilogramos cirílico", "2.5", "кг", "2500", "2500g (2.5kg)"},
		{"gramos", "250", "g", "250", "250g"},
		{"gramos cirílico", "100", "г", "100", "100g"},
		{"litros como gramos", "1.5", "liter", "1500", "1500g (1.5L)"},
		{"mililitros", "330", "ml", "330", "330g"},
		{"alias con espacios", "1", "  KG  ", "1000", "1000g (1kg)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, display, err := units.Normalize(gramItem(), dec(tc.value), tc.unit)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tc.grams)), "esperado %s, obtenido %s", tc.grams, got)
			assert.Equal(t, tc.display, display)
		})
	}
}

func TestNormalize_FoldsCyrillicUppercase(t *testing.T) {
	got, _, err := units.Normalize(gramItem(), dec("1"), "КГ")
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("1000")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Piezas y paquetes
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalize_PiecesWithPieceWeight(t *testing.T) {
	got, display, err := units.Normalize(chocolateBar(), dec("3"), "pieces")
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("300")))
	assert.Equal(t, "300g (3 pieces)", display)
}

// Artículo por conteo sin grammovka: el valor pasa directo como piezas.
func TestNormalize_PiecesWithoutPieceWeight(t *testing.T) {
	got, display, err := units.Normalize(pieceItem(), dec("3"), "pieces")
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("3")))
	assert.Equal(t, "3 pieces", display)
}

func TestNormalize_PackagesExpandToGrams(t *testing.T) {
	// 2 cajas × 20 piezas × 100 g = 4000 g
	got, display, err := units.Normalize(chocolateBar(), dec("2"), "boxes")
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("4000")))
	assert.Equal(t, "4000g (2 packages, 40 pieces)", display)
}

func TestNormalize_PackagesExpandToPieces(t *testing.T) {
	upp := int64(50)
	item := &entity.Item{ID: "i4", Name: "Gift Bag", CanonicalUnit: entity.UnitPiece, UnitsPerPackage: &upp}
	got, display, err := units.Normalize(item, dec("3"), "пачки")
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("150")))
	assert.Equal(t, "150 pieces (3 packages)", display)
}

// Paquete sin units_per_package definido: irresoluble, nunca 1:1 silencioso.
func TestNormalize_PackageWithoutBreakdownFails(t *testing.T) {
	_, _, err := units.Normalize(pieceItem(), dec("2"), "box")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnrecognizedUnit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalize_UnknownUnitFails(t *testing.T) {
	_, _, err := units.Normalize(gramItem(), dec("5"), "fortnights")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnrecognizedUnit)

	var unitErr *domain.UnrecognizedUnitError
	require.ErrorAs(t, err, &unitErr)
	assert.Equal(t, "fortnights", unitErr.Unit)
}

func TestNormalize_NegativeValueFails(t *testing.T) {
	_, _, err := units.Normalize(gramItem(), dec("-1"), "kg")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// Cero es válido para el conversor; el ledger decide si lo persiste.
func TestNormalize_ZeroIsAccepted(t *testing.T) {
	got, _, err := units.Normalize(gramItem(), decimal.Zero, "g")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Formateo y round-trip
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "5kg", units.FormatQuantity(gramItem(), dec("5000")))
	assert.Equal(t, "2.5kg", units.FormatQuantity(gramItem(), dec("2500")))
	assert.Equal(t, "500g", units.FormatQuantity(gramItem(), dec("500")))
	assert.Equal(t, "10 pieces", units.FormatQuantity(pieceItem(), dec("10")))
}

// Round-trip: 5 kg → 5000 g → "5kg".
func TestNormalize_RoundTripKilograms(t *testing.T) {
	grams, _, err := units.Normalize(gramItem(), dec("5"), "kg")
	require.NoError(t, err)
	assert.Equal(t, "5kg", units.FormatQuantity(gramItem(), grams))
}

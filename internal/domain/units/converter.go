// Package units normaliza cantidades heterogéneas ingresadas por el usuario
// (kilos, litros, piezas, cajas) a la unidad canónica de cada artículo:
// gramos para artículos por masa, piezas para artículos por conteo.
//
// Es lógica pura de dominio: sin efectos, determinista, testeable con la
// tabla estática de alias. Los alias cubren formas en latín y cirílico
// porque el personal registra en ambos idiomas.
package units

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/chocodealers/ledger-api/internal/domain"
	"github.com/chocodealers/ledger-api/internal/domain/entity"
)

// massAliases mapea cada alias de masa/volumen a su razón fija en gramos.
// Mililitros y litros se tratan 1:1 con gramos (aproximación para líquidos).
var massAliases = map[string]int64{
	// gramos
	"г": 1, "грамм": 1, "граммы": 1, "граммов": 1,
	"g": 1, "gram": 1, "grams": 1,
	// kilogramos
	"кг": 1000, "килограмм": 1000, "килограммы": 1000, "килограммов": 1000,
	"kg": 1000, "kilogram": 1000, "kilograms": 1000,
	// mililitros
	"мл": 1, "миллилитр": 1, "миллилитры": 1, "миллилитров": 1,
	"ml": 1, "milliliter": 1, "milliliters": 1,
	// litros
	"л": 1000, "литр": 1000, "литры": 1000, "литров": 1000,
	"l": 1000, "liter": 1000, "liters": 1000,
}

// Alias que se muestran como kg o L en el string de eco.
var kgAliases = map[string]bool{
	"кг": true, "килограмм": true, "килограммы": true, "килограммов": true,
	"kg": true, "kilogram": true, "kilograms": true,
}

var literAliases = map[string]bool{
	"л": true, "литр": true, "литры": true, "литров": true,
	"l": true, "liter": true, "liters": true,
}

var pieceAliases = map[string]bool{
	"штука": true, "штуки": true, "штук": true, "шт": true,
	"piece": true, "pieces": true, "pc": true, "pcs": true,
}

var packageAliases = map[string]bool{
	"коробка": true, "коробки": true, "коробок": true, "box": true, "boxes": true,
	"пачка": true, "пачки": true, "пачек": true, "pack": true, "packs": true,
}

// Case folding Unicode: los alias cirílicos también llegan en mayúsculas.
var fold = cases.Fold()

// Normalize convierte (valor, unidad cruda) a la cantidad canónica del
// artículo y devuelve un string de eco que combina forma canónica y entrada
// original (ej. "5000g (5kg)") para notas de auditoría y UI.
//
// Orden de resolución: alias de masa/volumen → alias de pieza (con o sin
// grammovka) → alias de paquete (requiere units_per_package). Una unidad que
// no resuelve falla con UnrecognizedUnitError: nunca se almacena una cantidad
// con unidad adivinada.
func Normalize(item *entity.Item, value decimal.Decimal, rawUnit string) (decimal.Decimal, string, error) {
	if value.IsNegative() {
		return decimal.Zero, "", domain.ErrInvalidQuantity
	}
	token := fold.String(strings.TrimSpace(rawUnit))

	// 1. Unidades de masa/volumen: razón fija a gramos.
	if mult, ok := massAliases[token]; ok {
		grams := value.Mul(decimal.NewFromInt(mult)).Round(0)
		switch {
		case kgAliases[token]:
			return grams, fmt.Sprintf("%sg (%skg)", grams.String(), value.String()), nil
		case literAliases[token]:
			return grams, fmt.Sprintf("%sg (%sL)", grams.String(), value.String()), nil
		default:
			return grams, fmt.Sprintf("%sg", grams.String()), nil
		}
	}

	// 2. Piezas: con grammovka se convierte a gramos; sin grammovka el
	// artículo se cuenta por piezas y el valor pasa directo.
	if pieceAliases[token] {
		pieces := value.Truncate(0)
		if item.PieceWeightGrams != nil {
			grams := pieces.Mul(*item.PieceWeightGrams).Round(0)
			return grams, fmt.Sprintf("%sg (%s pieces)", grams.String(), pieces.String()), nil
		}
		return pieces, fmt.Sprintf("%s pieces", pieces.String()), nil
	}

	// 3. Paquetes: se expande a piezas totales y se aplica la regla 2.
	// Sin units_per_package la unidad es irresoluble para este artículo.
	if packageAliases[token] {
		if item.UnitsPerPackage == nil {
			return decimal.Zero, "", &domain.UnrecognizedUnitError{Unit: rawUnit}
		}
		packages := value.Truncate(0)
		pieces := packages.Mul(decimal.NewFromInt(*item.UnitsPerPackage))
		if item.PieceWeightGrams != nil {
			grams := pieces.Mul(*item.PieceWeightGrams).Round(0)
			display := fmt.Sprintf("%sg (%s packages, %s pieces)",
				grams.String(), packages.String(), pieces.String())
			return grams, display, nil
		}
		return pieces, fmt.Sprintf("%s pieces (%s packages)", pieces.String(), packages.String()), nil
	}

	// 4. Nada resolvió: fallo duro, sin coerción silenciosa.
	return decimal.Zero, "", &domain.UnrecognizedUnitError{Unit: rawUnit}
}

// FormatQuantity formatea una cantidad canónica para mostrar: piezas como
// conteo, gramos como "Ng" o "Nkg" cuando llega al kilo.
func FormatQuantity(item *entity.Item, qty decimal.Decimal) string {
	if item.IsPieceBased() {
		return fmt.Sprintf("%s pieces", qty.String())
	}
	thousand := decimal.NewFromInt(1000)
	if qty.GreaterThanOrEqual(thousand) {
		kg := qty.Div(thousand)
		if kg.Equal(kg.Truncate(0)) {
			return fmt.Sprintf("%skg", kg.Truncate(0).String())
		}
		return fmt.Sprintf("%skg", kg.Round(2).String())
	}
	return fmt.Sprintf("%sg", qty.String())
}

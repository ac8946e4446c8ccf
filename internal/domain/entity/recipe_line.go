package entity

import "github.com/shopspring/decimal"

// RecipeLine es una línea de receta: cuánto de un ingrediente se consume por
// cada unidad producida de un producto terminado. AmountPerUnit siempre está
// en la unidad canónica del ingrediente. Los ingredientes de una receta son
// únicos; un producto sin líneas de receta no puede producirse.
type RecipeLine struct {
	ProductID     string
	IngredientID  string
	AmountPerUnit decimal.Decimal
	Position      int // orden de la receta para reportes
}

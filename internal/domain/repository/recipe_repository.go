package repository

import (
	"context"

	"github.com/chocodealers/ledger-api/internal/domain/entity"
)

// RecipeRepository define el puerto de lectura de recetas.
type RecipeRepository interface {
	// ListByProduct devuelve las líneas de receta del producto en orden de
	// receta (position). Vacío si el producto no tiene receta.
	ListByProduct(ctx context.Context, productID string) ([]*entity.RecipeLine, error)
	// ListProductsWithRecipes devuelve los artículos producibles (con al menos
	// una línea de receta), para los menús de producción.
	ListProductsWithRecipes(ctx context.Context) ([]*entity.Item, error)
}

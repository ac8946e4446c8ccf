package postgres

import (
	"context"
	"fmt"

	"github.com/chocodealers/ledger-api/internal/domain/entity"
	"github.com/chocodealers/ledger-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación del puerto RecipeRepository sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de lectura de recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// ListByProduct devuelve las líneas de receta del producto en orden de receta.
func (r *RecipeRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.RecipeLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT product_id, ingredient_id, amount_per_unit, position
		 FROM recipe_lines WHERE product_id = $1 ORDER BY position`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipe lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecipeLine
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ProductID, &l.IngredientID, &l.AmountPerUnit, &l.Position); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListProductsWithRecipes devuelve los artículos producibles (con al menos una línea de receta).
func (r *RecipeRepo) ListProductsWithRecipes(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+itemColumns+`
		 FROM items
		 WHERE is_active AND id IN (SELECT DISTINCT product_id FROM recipe_lines)
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list producible items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

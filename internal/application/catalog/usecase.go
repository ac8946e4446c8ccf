package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chocodealers/ledger-api/internal/application/dto"
	"github.com/chocodealers/ledger-api/internal/domain"
	"github.com/chocodealers/ledger-api/internal/domain/entity"
	"github.com/chocodealers/ledger-api/internal/domain/repository"
	"github.com/chocodealers/ledger-api/internal/domain/units"
)

// CatalogUseCase gestiona el catálogo de artículos. No toca stock: los
// artículos nacen con stock cero y de ahí en adelante solo el ledger lo muta.
type CatalogUseCase struct {
	itemRepo   repository.ItemRepository
	recipeRepo repository.RecipeRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(itemRepo repository.ItemRepository, recipeRepo repository.RecipeRepository) *CatalogUseCase {
	return &CatalogUseCase{itemRepo: itemRepo, recipeRepo: recipeRepo}
}

// CreateItem da de alta un artículo con stock cero.
func (uc *CatalogUseCase) CreateItem(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CanonicalUnit != entity.UnitGram && in.CanonicalUnit != entity.UnitPiece {
		return nil, domain.ErrInvalidInput
	}
	if in.PieceWeightGrams != nil && !in.PieceWeightGrams.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitsPerPackage != nil && *in.UnitsPerPackage <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now()
	item := &entity.Item{
		ID:               uuid.New().String(),
		SKU:              in.SKU,
		Name:             in.Name,
		Category:         in.Category,
		CanonicalUnit:    in.CanonicalUnit,
		CurrentStock:     decimal.Zero,
		PieceWeightGrams: in.PieceWeightGrams,
		UnitsPerPackage:  in.UnitsPerPackage,
		MinStock:         in.MinStock,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// GetItem devuelve un artículo por ID.
func (uc *CatalogUseCase) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return ToItemResponse(item), nil
}

// ListItems lista el catálogo activo con paginación.
func (uc *CatalogUseCase) ListItems(ctx context.Context, limit, offset int) ([]dto.ItemResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	items, err := uc.itemRepo.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *ToItemResponse(it))
	}
	return out, nil
}

// ListProducible lista los artículos con receta definida (candidatos a producción).
func (uc *CatalogUseCase) ListProducible(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := uc.recipeRepo.ListProductsWithRecipes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *ToItemResponse(it))
	}
	return out, nil
}

// ToItemResponse mapea la entidad al DTO de salida.
func ToItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:               it.ID,
		SKU:              it.SKU,
		Name:             it.Name,
		Category:         it.Category,
		CanonicalUnit:    it.CanonicalUnit,
		CurrentStock:     it.CurrentStock,
		StockDisplay:     units.FormatQuantity(it, it.CurrentStock),
		PieceWeightGrams: it.PieceWeightGrams,
		UnitsPerPackage:  it.UnitsPerPackage,
		MinStock:         it.MinStock,
		IsActive:         it.IsActive,
		UpdatedAt:        it.UpdatedAt,
	}
}

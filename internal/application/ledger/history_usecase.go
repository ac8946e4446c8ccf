package ledger

import (
	"context"
	"time"

	"github.com/chocodealers/ledger-api/internal/application/dto"
	"github.com/chocodealers/ledger-api/internal/domain"
	"github.com/chocodealers/ledger-api/internal/domain/entity"
	"github.com/chocodealers/ledger-api/internal/domain/repository"
)

// HistoryUseCase consultas de solo lectura sobre el registro de auditoría.
// Corre sobre el pool, fuera de transacciones.
type HistoryUseCase struct {
	itemRepo   repository.ItemRepository
	ledgerRepo repository.LedgerRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(itemRepo repository.ItemRepository, ledgerRepo repository.LedgerRepository) *HistoryUseCase {
	return &HistoryUseCase{itemRepo: itemRepo, ledgerRepo: ledgerRepo}
}

// ListByItem devuelve el histórico de un artículo, más reciente primero.
func (uc *HistoryUseCase) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]dto.LedgerEntryResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	entries, err := uc.ledgerRepo.ListByItem(ctx, itemID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toEntryResponses(entries), nil
}

// ListRecent devuelve las últimas entradas de todo el ledger.
func (uc *HistoryUseCase) ListRecent(ctx context.Context, limit, offset int) ([]dto.LedgerEntryResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	entries, err := uc.ledgerRepo.ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return toEntryResponses(entries), nil
}

// ListByProductionEvent devuelve todas las entradas de una corrida de producción.
func (uc *HistoryUseCase) ListByProductionEvent(ctx context.Context, eventID string) ([]dto.LedgerEntryResponse, error) {
	entries, err := uc.ledgerRepo.ListByProductionEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return toEntryResponses(entries), nil
}

// ToEntryResponse mapea una entrada del ledger al DTO de salida.
func ToEntryResponse(e *entity.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:                e.ID,
		ItemID:            e.ItemID,
		ItemName:          e.ItemName,
		Action:            e.Action,
		Delta:             e.Delta,
		QuantityBefore:    e.QuantityBefore,
		QuantityAfter:     e.QuantityAfter,
		Actor:             e.Actor,
		Note:              e.Note,
		ProductionEventID: e.ProductionEventID,
		CreatedAt:         e.CreatedAt,
	}
}

func toEntryResponses(entries []*entity.LedgerEntry) []dto.LedgerEntryResponse {
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToEntryResponse(e))
	}
	return out
}

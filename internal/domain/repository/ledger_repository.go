package repository

import (
	"context"
	"time"

	"github.com/chocodealers/ledger-api/internal/domain/entity"
)

// LedgerRepository define el puerto de persistencia del registro de auditoría.
// Solo inserta y consulta: las entradas son inmutables, sin Update ni Delete.
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error)
	ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
	// ListByProductionEvent devuelve todas las entradas de una corrida de
	// producción (débitos de ingredientes + crédito del producto).
	ListByProductionEvent(ctx context.Context, eventID string) ([]*entity.LedgerEntry, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*entity.LedgerEntry, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chocodealers/ledger-api/internal/domain/entity"
	"github.com/chocodealers/ledger-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const ledgerColumns = `id, item_id, item_name, action, delta, quantity_before, quantity_after, actor, note, production_event_id, created_at`

// LedgerRepo implementación del puerto LedgerRepository sobre PostgreSQL (usable con pool o tx).
// Solo inserta y consulta: las entradas son inmutables.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador de persistencia del ledger. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create persiste una entrada del ledger.
func (r *LedgerRepo) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ledger_entries (id, item_id, item_name, action, delta, quantity_before, quantity_after, actor, note, production_event_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ItemID, entry.ItemName, entry.Action, entry.Delta,
		entry.QuantityBefore, entry.QuantityAfter, entry.Actor, entry.Note,
		entry.ProductionEventID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *LedgerRepo) GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx,
		`SELECT `+ledgerColumns+` FROM ledger_entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return e, nil
}

// ListByItem lista entradas de un artículo en un rango de fechas, más recientes primero.
func (r *LedgerRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE item_id = $1`
	args := []any{itemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger by item: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// ListByProductionEvent devuelve todas las entradas de una corrida de producción,
// en orden de inserción (débitos primero, crédito del producto al final).
func (r *LedgerRepo) ListByProductionEvent(ctx context.Context, eventID string) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+ledgerColumns+` FROM ledger_entries WHERE production_event_id = $1 ORDER BY created_at, id`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list ledger by production event: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// ListRecent lista las entradas más recientes de todo el ledger.
func (r *LedgerRepo) ListRecent(ctx context.Context, limit, offset int) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+ledgerColumns+` FROM ledger_entries ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent ledger entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func scanEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	err := row.Scan(
		&e.ID, &e.ItemID, &e.ItemName, &e.Action, &e.Delta,
		&e.QuantityBefore, &e.QuantityAfter, &e.Actor, &e.Note,
		&e.ProductionEventID, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEntries(rows pgx.Rows) ([]*entity.LedgerEntry, error) {
	var list []*entity.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

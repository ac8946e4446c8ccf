package ledger_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chocodealers/ledger-api/internal/application/ledger"
	"github.com/chocodealers/ledger-api/internal/domain/entity"
	"github.com/chocodealers/ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional real: el TxRunner ejecuta fn
// contra una copia del estado y solo la promueve si fn no falla. Así los tests
// de atomicidad verifican rollback de verdad y no un mock que siempre acepta.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items   map[string]*entity.Item
	recipes map[string][]*entity.RecipeLine
	entries []*entity.LedgerEntry
}

func newMemStore() *memStore {
	return &memStore{
		items:   make(map[string]*entity.Item),
		recipes: make(map[string][]*entity.RecipeLine),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, it := range s.items {
		cp := *it
		c.items[id] = &cp
	}
	for id, lines := range s.recipes {
		c.recipes[id] = append([]*entity.RecipeLine(nil), lines...)
	}
	c.entries = append([]*entity.LedgerEntry(nil), s.entries...)
	return c
}

type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	recipeRepo repository.RecipeRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	staged := r.store.clone()
	err := fn(&memItemRepo{staged}, &memRecipeRepo{staged}, &memLedgerRepo{staged})
	if err != nil {
		return err // rollback: se descarta staged
	}
	*r.store = *staged // commit
	return nil
}

var _ ledger.TxRunner = (*memTxRunner)(nil)

// ── ItemRepository ────────────────────────────────────────────────────────────

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(_ context.Context, item *entity.Item) error {
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) GetBySKU(_ context.Context, sku string) (*entity.Item, error) {
	for _, it := range r.s.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *memItemRepo) UpdateStock(_ context.Context, id string, quantity decimal.Decimal) error {
	it, ok := r.s.items[id]
	if !ok {
		return nil
	}
	it.CurrentStock = quantity
	it.UpdatedAt = time.Now()
	return nil
}

func (r *memItemRepo) ListActive(_ context.Context, limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.s.items {
		if it.IsActive {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].Name, out[j].Name) < 0 })
	return out, nil
}

func (r *memItemRepo) ListBelowMinStock(_ context.Context) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.s.items {
		if it.IsActive && it.CurrentStock.LessThan(it.MinStock) {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di := out[i].MinStock.Sub(out[i].CurrentStock)
		dj := out[j].MinStock.Sub(out[j].CurrentStock)
		return di.GreaterThan(dj)
	})
	return out, nil
}

// ── RecipeRepository ──────────────────────────────────────────────────────────

type memRecipeRepo struct{ s *memStore }

func (r *memRecipeRepo) ListByProduct(_ context.Context, productID string) ([]*entity.RecipeLine, error) {
	return append([]*entity.RecipeLine(nil), r.s.recipes[productID]...), nil
}

func (r *memRecipeRepo) ListProductsWithRecipes(ctx context.Context) ([]*entity.Item, error) {
	var out []*entity.Item
	for productID := range r.s.recipes {
		if it := r.s.items[productID]; it != nil {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── LedgerRepository ──────────────────────────────────────────────────────────

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Create(_ context.Context, entry *entity.LedgerEntry) error {
	cp := *entry
	r.s.entries = append(r.s.entries, &cp)
	return nil
}

func (r *memLedgerRepo) GetByID(_ context.Context, id string) (*entity.LedgerEntry, error) {
	for _, e := range r.s.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLedgerRepo) ListByItem(_ context.Context, itemID string, _, _ *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.ItemID == itemID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) ListByProductionEvent(_ context.Context, eventID string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.ProductionEventID != nil && *e.ProductionEventID == eventID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) ListRecent(_ context.Context, limit, offset int) ([]*entity.LedgerEntry, error) {
	out := append([]*entity.LedgerEntry(nil), r.s.entries...)
	return out, nil
}

// ── Notifier espía ────────────────────────────────────────────────────────────

type spyNotifier struct {
	calls []notifyCall
	err   error // si no es nil, cada Notify falla con este error
}

type notifyCall struct {
	itemID   string
	quantity decimal.Decimal
}

func (n *spyNotifier) NotifyStockChange(_ context.Context, item *entity.Item, newQuantity decimal.Decimal) error {
	n.calls = append(n.calls, notifyCall{itemID: item.ID, quantity: newQuantity})
	return n.err
}

// ── Helpers de datos ──────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func gramIngredient(id, name, stock string) *entity.Item {
	return &entity.Item{
		ID: id, SKU: "SKU-" + id, Name: name, CanonicalUnit: entity.UnitGram,
		CurrentStock: dec(stock), IsActive: true,
	}
}

func pieceIngredient(id, name, stock string) *entity.Item {
	return &entity.Item{
		ID: id, SKU: "SKU-" + id, Name: name, CanonicalUnit: entity.UnitPiece,
		CurrentStock: dec(stock), IsActive: true,
	}
}

package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chocodealers/ledger-api/internal/application/ledger"
	"github.com/chocodealers/ledger-api/internal/domain/entity"
	"github.com/chocodealers/ledger-api/pkg/config"
)

const (
	baseURLSandbox    = "https://connect.squareupsandbox.com"
	baseURLProduction = "https://connect.squareup.com"
	squareVersion     = "2024-06-04"
)

var _ ledger.StockNotifier = (*Client)(nil)

// Client espeja los niveles de stock hacia Square POS como conteos físicos.
// El ledger local es la fuente de verdad; Square es solo una vista para el
// punto de venta, por eso el push es best-effort y nunca revierte nada.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	locationID  string
}

// NewClient construye el cliente de Square según la configuración.
// Devuelve nil si no hay access token: sin token no hay espejo POS y el
// caller debe tratar el notifier nil como desactivado.
func NewClient(cfg config.SquareConfig) *Client {
	if cfg.AccessToken == "" {
		return nil
	}
	baseURL := baseURLSandbox
	if cfg.Environment == "production" {
		baseURL = baseURLProduction
	}
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		accessToken: cfg.AccessToken,
		locationID:  cfg.LocationID,
	}
}

type inventoryChange struct {
	Type          string         `json:"type"`
	PhysicalCount *physicalCount `json:"physical_count,omitempty"`
}

type physicalCount struct {
	CatalogObjectID string `json:"catalog_object_id"`
	State           string `json:"state"`
	LocationID      string `json:"location_id"`
	Quantity        string `json:"quantity"`
	OccurredAt      string `json:"occurred_at"`
}

type batchChangeRequest struct {
	IdempotencyKey string            `json:"idempotency_key"`
	Changes        []inventoryChange `json:"changes"`
}

type errorResponse struct {
	Errors []struct {
		Category string `json:"category"`
		Code     string `json:"code"`
		Detail   string `json:"detail"`
	} `json:"errors"`
}

// NotifyStockChange publica el nuevo nivel de stock del artículo como un
// PHYSICAL_COUNT en Square. El SKU del artículo debe coincidir con el
// catalog_object_id de la variante en Square.
func (c *Client) NotifyStockChange(ctx context.Context, item *entity.Item, newQuantity decimal.Decimal) error {
	body := batchChangeRequest{
		IdempotencyKey: uuid.New().String(),
		Changes: []inventoryChange{{
			Type: "PHYSICAL_COUNT",
			PhysicalCount: &physicalCount{
				CatalogObjectID: item.SKU,
				State:           "IN_STOCK",
				LocationID:      c.locationID,
				// Square solo acepta enteros para conteos; el stock en gramos se trunca.
				Quantity:   newQuantity.Truncate(0).String(),
				OccurredAt: time.Now().UTC().Format(time.RFC3339),
			},
		}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal inventory change: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v2/inventory/changes/batch-create", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build square request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Square-Version", squareVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("square request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var errResp errorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && len(errResp.Errors) > 0 {
		e := errResp.Errors[0]
		return fmt.Errorf("square rechazó el conteo (%d): %s %s: %s", resp.StatusCode, e.Category, e.Code, e.Detail)
	}
	return fmt.Errorf("square rechazó el conteo (%d): %s", resp.StatusCode, string(raw))
}

package indexprice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"stock_dashboard/internal/feature/snapshots/domain"
	"stock_dashboard/internal/feature/snapshots/usecase"
)

const providerName = "indexprice"

// responseKeys maps an index display name to its field in the service response.
var responseKeys = map[string]string{
	"NIFTY 50": "nifty50",
}

// Client reads index values from GET /api/index-prices.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.IndexPriceGateway = (*Client)(nil)

// NewClient creates a Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// LastPrice returns the latest value of the named index.
// A null value, an unknown index or a non-2xx answer is reported as an error.
func (c *Client) LastPrice(ctx context.Context, index string) (float64, error) {
	key, ok := responseKeys[strings.ToUpper(strings.TrimSpace(index))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown index %q", domain.ErrIndexUnavailable, index)
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/api/index-prices"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s request: %w", providerName, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return 0, &domain.ProviderError{Provider: providerName, StatusCode: res.StatusCode}
	}

	var body map[string]*float64
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode %s response: %w", providerName, err)
	}
	v := body[key]
	if v == nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrIndexUnavailable, index)
	}
	return *v, nil
}

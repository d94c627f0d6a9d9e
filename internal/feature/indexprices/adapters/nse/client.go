package nse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"stock_dashboard/internal/feature/indexprices/adapters/nse/dto"
	"stock_dashboard/internal/feature/indexprices/domain/entity"
	"stock_dashboard/internal/feature/indexprices/usecase"
)

// browserHeaders makes the request look like it comes from the NSE website; the endpoint rejects bare clients.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36",
	"Referer":         "https://www.nseindia.com/",
	"Accept":          "application/json",
	"Accept-Language": "en-US,en;q=0.9",
	"Sec-Fetch-Mode":  "cors",
	"Sec-Fetch-Site":  "same-origin",
	"Connection":      "keep-alive",
}

// Client reads index values from the NSE market status endpoint.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.IndexPriceRepository = (*Client)(nil)

// NewClient creates a Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// LastPrice returns the last value NSE reports for index.
// The quote's Last is nil when the index is not listed or has no value.
func (c *Client) LastPrice(ctx context.Context, index string) (entity.IndexQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.MarketStatusURL, nil)
	if err != nil {
		return entity.IndexQuote{}, err
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return entity.IndexQuote{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.IndexQuote{}, fmt.Errorf("nse http %d", res.StatusCode)
	}

	var body dto.MarketStatusResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.IndexQuote{}, fmt.Errorf("decode nse market status: %w", err)
	}

	q := entity.IndexQuote{Index: index}
	// 同じ指数が複数回現れた場合は最後の値を使う
	for _, m := range body.MarketState {
		if m.Index == index {
			q.Last = m.Last.Value
		}
	}
	return q, nil
}

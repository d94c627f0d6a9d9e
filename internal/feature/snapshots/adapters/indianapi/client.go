package indianapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"stock_dashboard/internal/feature/snapshots/domain"
	"stock_dashboard/internal/feature/snapshots/domain/entity"
	"stock_dashboard/internal/feature/snapshots/usecase"
	"stock_dashboard/internal/shared/ratelimiter"
)

const providerName = "indianapi"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=indianapi_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches raw quotes from IndianAPI. It does not retry, cache or interpret the payload.
type Client struct {
	cfg        Config
	httpClient HTTPClient
	limiter    ratelimiter.RateLimiterInterface
}

var _ usecase.QuoteGateway = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRateLimiter throttles outgoing requests through rl.
func WithRateLimiter(rl ratelimiter.RateLimiterInterface) ClientOption {
	return func(c *Client) { c.limiter = rl }
}

// NewClient creates a Client with the given configuration and HTTP client.
func NewClient(cfg Config, httpClient HTTPClient, opts ...ClientOption) *Client {
	c := &Client{cfg: cfg, httpClient: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// encodeName trims the query and turns each whitespace run into a single '+'.
func encodeName(query string) string {
	return url.QueryEscape(whitespaceRun.ReplaceAllString(strings.TrimSpace(query), " "))
}

// FetchQuote requests GET /stock?name=<query> and returns the decoded payload unmodified.
// Non-2xx responses are reported as *domain.ProviderError.
func (c *Client) FetchQuote(ctx context.Context, query string) (entity.ProviderQuote, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return entity.ProviderQuote{}, fmt.Errorf("%s rate limit: %w", providerName, err)
		}
	}

	u := fmt.Sprintf("%s/stock?name=%s", strings.TrimRight(c.cfg.BaseURL, "/"), encodeName(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.ProviderQuote{}, err
	}
	req.Header.Set("X-Api-Key", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return entity.ProviderQuote{}, fmt.Errorf("%s request: %w", providerName, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return entity.ProviderQuote{}, &domain.ProviderError{Provider: providerName, StatusCode: res.StatusCode}
	}

	var q entity.ProviderQuote
	if err := json.NewDecoder(res.Body).Decode(&q); err != nil {
		return entity.ProviderQuote{}, fmt.Errorf("decode %s quote: %w", providerName, err)
	}
	return q, nil
}

// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"stock_dashboard/internal/feature/indexprices/adapters/nse"
	"stock_dashboard/internal/feature/snapshots/adapters/indexprice"
	"stock_dashboard/internal/feature/snapshots/adapters/indianapi"
	"stock_dashboard/internal/feature/snapshots/usecase"
	"stock_dashboard/internal/platform/cache"
	infrahttp "stock_dashboard/internal/platform/http"
	"stock_dashboard/internal/shared/ratelimiter"
)

// NewQuoteGateway creates a fully configured IndianAPI client with HTTP client and optional throttling.
func NewQuoteGateway() *indianapi.Client {
	cfg := indianapi.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	var opts []indianapi.ClientOption
	if cfg.RateLimitPerMinute > 0 {
		opts = append(opts, indianapi.WithRateLimiter(ratelimiter.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)))
	}
	return indianapi.NewClient(cfg, httpClient, opts...)
}

// NewIndexPriceGateway creates a client for the index price proxy.
func NewIndexPriceGateway() *indexprice.Client {
	cfg := indexprice.LoadConfig()
	return indexprice.NewClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

// NewAggregator wires both gateways into the snapshot aggregator.
func NewAggregator() *usecase.Aggregator {
	return usecase.NewAggregator(NewQuoteGateway(), NewIndexPriceGateway())
}

// NewIndexPriceRepository creates the NSE scraper, wrapped in a Redis cache when rdb is non-nil.
func NewIndexPriceRepository(rdb *redis.Client) *cache.CachingIndexPriceRepository {
	cfg := nse.LoadConfig()
	upstream := nse.NewClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
	ttl := infrahttp.TimeoutFromEnv("INDEX_PRICE_CACHE_TTL_SEC", cache.DefaultIndexPriceTTL)
	return cache.NewCachingIndexPriceRepository(rdb, ttl, upstream, "indexprices")
}

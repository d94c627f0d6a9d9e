// Package nse scrapes index values from the NSE India market status endpoint.
package nse

import (
	"os"
	"time"

	infrahttp "stock_dashboard/internal/platform/http"
)

// DefaultMarketStatusURL is the public NSE endpoint the proxy reads.
const DefaultMarketStatusURL = "https://www.nseindia.com/api/marketStatus"

// Config holds configuration for the NSE client.
type Config struct {
	MarketStatusURL string
	Timeout         time.Duration
}

// LoadConfig loads NSE configuration from environment variables.
func LoadConfig() Config {
	u := os.Getenv("NSE_MARKET_STATUS_URL")
	if u == "" {
		u = DefaultMarketStatusURL
	}
	return Config{
		MarketStatusURL: u,
		Timeout:         infrahttp.TimeoutFromEnv("HTTP_TIMEOUT_SEC", 0),
	}
}

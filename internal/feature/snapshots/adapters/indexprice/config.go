// Package indexprice provides a client for the auxiliary index price service.
package indexprice

import (
	"os"
	"time"

	infrahttp "stock_dashboard/internal/platform/http"
)

// DefaultBaseURL points at the index proxy when it runs next to the dashboard.
const DefaultBaseURL = "http://localhost:5000"

// Config holds configuration for the index price client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// LoadConfig loads the index price service configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("INDEX_PRICE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: infrahttp.TimeoutFromEnv("HTTP_TIMEOUT_SEC", 0),
	}
}

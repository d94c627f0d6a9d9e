// Package indianapi provides a client for the IndianAPI stock quote service.
package indianapi

import (
	"os"
	"strconv"
	"time"

	infrahttp "stock_dashboard/internal/platform/http"
)

// DefaultBaseURL is the public IndianAPI endpoint.
const DefaultBaseURL = "https://stock.indianapi.in"

// Config holds configuration for the IndianAPI client.
type Config struct {
	APIKey  string        // sent as the X-Api-Key header
	BaseURL string        // e.g. "https://stock.indianapi.in"
	Timeout time.Duration // whole-request timeout, 0 for none

	RateLimitPerMinute int // 0 disables throttling
}

// LoadConfig loads IndianAPI configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("INDIAN_API_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	limit, err := strconv.Atoi(os.Getenv("INDIAN_API_RATE_LIMIT"))
	if err != nil || limit < 0 {
		limit = 0
	}
	return Config{
		APIKey:             os.Getenv("INDIAN_API_KEY"),
		BaseURL:            base,
		Timeout:            infrahttp.TimeoutFromEnv("HTTP_TIMEOUT_SEC", 0),
		RateLimitPerMinute: limit,
	}
}

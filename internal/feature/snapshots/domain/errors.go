// Package domain defines domain-level errors for the snapshots feature.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors for watchlist operations.
// UserMessage maps them to the text shown on the dashboard.
var (
	// ErrEmptyInput is returned when a search term is blank after trimming.
	ErrEmptyInput = errors.New("enter a stock name or symbol")

	// ErrAlreadyPresent is returned when a searched stock is already displayed.
	ErrAlreadyPresent = errors.New("stock already displayed")

	// ErrNotFound is returned when a search cannot produce any snapshot at all.
	ErrNotFound = errors.New("stock not found")

	// ErrLoadFailed is returned when a bulk refresh fails as a whole.
	ErrLoadFailed = errors.New("failed to load stocks")

	// ErrSuperseded is returned by a refresh whose result was discarded because a newer state change won.
	ErrSuperseded = errors.New("refresh superseded by a newer update")

	// ErrIndexUnavailable is returned when the index price service has no value for the requested index.
	ErrIndexUnavailable = errors.New("index price unavailable")
)

// ProviderError is returned by gateways when an upstream answers with a non-2xx status.
type ProviderError struct {
	Provider   string
	StatusCode int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s http %d", e.Provider, e.StatusCode)
}

// UserMessage returns the dashboard text for a domain error, or "" when err is not user-facing.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "Enter a stock name or symbol"
	case errors.Is(err, ErrAlreadyPresent):
		return "Stock already displayed"
	case errors.Is(err, ErrNotFound):
		return "Stock not found"
	case errors.Is(err, ErrLoadFailed):
		return "Failed to load stocks"
	default:
		return ""
	}
}

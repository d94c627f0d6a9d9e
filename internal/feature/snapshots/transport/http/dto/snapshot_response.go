// Package dto defines data transfer objects for the snapshots HTTP API.
package dto

import (
	"time"

	"stock_dashboard/internal/feature/snapshots/domain/entity"
	"stock_dashboard/internal/feature/snapshots/usecase"
)

// SnapshotResponse is one stock card as shown on the dashboard.
type SnapshotResponse struct {
	Name               string   `json:"name"`
	Symbol             string   `json:"symbol"`
	CurrentPrice       float64  `json:"currentPrice"`
	PriceChange        float64  `json:"priceChange"`
	PriceChangePercent float64  `json:"priceChangePercent"`
	YearHigh           float64  `json:"yearHigh"`
	YearLow            float64  `json:"yearLow"`
	MarketCap          *float64 `json:"marketCap,omitempty"`
	ImageURL           string   `json:"imageUrl,omitempty"`
	Industry           string   `json:"industry,omitempty"`
	LastUpdated        string   `json:"lastUpdated"`
	RangePosition      float64  `json:"rangePosition"`
	Status             string   `json:"status"`
	DegradedReason     string   `json:"degradedReason,omitempty"`
}

// SearchRequest is the body of POST /stocks/search.
type SearchRequest struct {
	Term string `json:"term"`
}

// StatsResponse summarizes gainers and losers.
type StatsResponse struct {
	Total            int     `json:"total"`
	Gainers          int     `json:"gainers"`
	Losers           int     `json:"losers"`
	AvgChangePercent float64 `json:"avgChangePercent"`
}

// StatusResponse exposes the loading flags and the current notice.
type StatusResponse struct {
	Loading    bool   `json:"loading"`
	Refreshing bool   `json:"refreshing"`
	Searching  bool   `json:"searching"`
	Generation uint64 `json:"generation"`
	Error      string `json:"error,omitempty"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FromResolution converts a resolved card to its response form.
func FromResolution(r entity.Resolution) SnapshotResponse {
	s := r.Snapshot
	return SnapshotResponse{
		Name:               s.Name,
		Symbol:             s.Symbol,
		CurrentPrice:       s.CurrentPrice,
		PriceChange:        s.PriceChange,
		PriceChangePercent: s.PriceChangePercent,
		YearHigh:           s.YearHigh,
		YearLow:            s.YearLow,
		MarketCap:          s.MarketCap,
		ImageURL:           s.ImageURL,
		Industry:           s.Industry,
		LastUpdated:        s.LastUpdated.UTC().Format(time.RFC3339),
		RangePosition:      s.RangePosition(),
		Status:             string(r.Status),
		DegradedReason:     string(r.Reason),
	}
}

// FromResolutions converts cards in order. A nil input yields an empty slice.
func FromResolutions(rs []entity.Resolution) []SnapshotResponse {
	out := make([]SnapshotResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromResolution(r))
	}
	return out
}

// FromStats converts market stats.
func FromStats(st usecase.MarketStats) StatsResponse {
	return StatsResponse{
		Total:            st.Total,
		Gainers:          st.Gainers,
		Losers:           st.Losers,
		AvgChangePercent: st.AvgChangePercent,
	}
}

// FromStatus converts the watchlist status.
func FromStatus(st usecase.WatchlistStatus) StatusResponse {
	return StatusResponse{
		Loading:    st.Loading,
		Refreshing: st.Refreshing,
		Searching:  st.Searching,
		Generation: st.Generation,
		Error:      st.Notice,
	}
}

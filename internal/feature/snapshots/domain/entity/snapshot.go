// Package entity defines the domain models for the snapshots feature.
package entity

import (
	"math"
	"time"
)

// StockSnapshot is the normalized, display-ready state of one instrument at one moment.
// Name and Symbol together form the case-insensitive identity used for deduplication.
type StockSnapshot struct {
	Name               string
	Symbol             string
	CurrentPrice       float64 // 0 means "unavailable"
	PriceChange        float64
	PriceChangePercent float64
	YearHigh           float64
	YearLow            float64
	MarketCap          *float64 // nil when the provider omits it
	ImageURL           string
	Industry           string
	LastUpdated        time.Time
}

// NewPlaceholder builds the degraded snapshot used when live data cannot be obtained.
// Change values are zero and both 52-week bounds equal the given price.
func NewPlaceholder(name, symbol string, price float64, now time.Time) StockSnapshot {
	return StockSnapshot{
		Name:         name,
		Symbol:       symbol,
		CurrentPrice: price,
		YearHigh:     price,
		YearLow:      price,
		LastUpdated:  now,
	}
}

// HasFiniteNumbers reports whether every numeric field the UI displays is a real number.
func (s StockSnapshot) HasFiniteNumbers() bool {
	for _, v := range []float64{s.CurrentPrice, s.PriceChange, s.PriceChangePercent, s.YearHigh, s.YearLow} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	if s.MarketCap != nil && (math.IsNaN(*s.MarketCap) || math.IsInf(*s.MarketCap, 0)) {
		return false
	}
	return true
}

// RangePosition returns where CurrentPrice sits inside the 52-week range, in percent.
//
//   - 0 when either bound is 0 (unknown range)
//   - 100 when YearHigh equals YearLow
//   - otherwise (price - low) / (high - low) * 100, clamped to [0, 100]
func (s StockSnapshot) RangePosition() float64 {
	if s.YearHigh == 0 || s.YearLow == 0 {
		return 0
	}
	if s.YearHigh == s.YearLow {
		return 100
	}
	p := (s.CurrentPrice - s.YearLow) / (s.YearHigh - s.YearLow) * 100
	return math.Min(100, math.Max(0, p))
}

// Package usecase はスナップショット集約のビジネスロジックを実装します。
package usecase

import (
	"math"
	"time"

	"stock_dashboard/internal/feature/snapshots/domain/entity"
)

// Normalize はプロバイダーの生データを表示用のStockSnapshotに変換します。
// I/Oも状態も持たない純粋関数で、同じ入力と時刻からは常に同じ結果を返します。
//
// 数値のパースに失敗した場合はNaNのまま残します。検証はAggregatorの責務です。
func Normalize(raw entity.ProviderQuote, now time.Time) entity.StockSnapshot {
	price := primaryPrice(raw.CurrentPrice)
	pct := raw.PercentChange.Float()

	s := entity.StockSnapshot{
		Name:               raw.CompanyName,
		Symbol:             firstNonEmpty(raw.CompanyProfile.ExchangeCodeNSE, raw.CompanyProfile.ExchangeCodeBSE),
		CurrentPrice:       price,
		PriceChange:        price * pct / 100,
		PriceChangePercent: pct,
		YearHigh:           raw.YearHigh.Float(),
		YearLow:            raw.YearLow.Float(),
		Industry:           raw.Industry,
		LastUpdated:        now,
	}

	// 先頭のピア企業が銘柄自身を表す
	if peers := raw.CompanyProfile.PeerCompanyList; len(peers) > 0 {
		if !peers[0].MarketCap.IsZero() {
			mc := peers[0].MarketCap.Float()
			s.MarketCap = &mc
		}
		s.ImageURL = peers[0].ImageURL
	}
	return s
}

// primaryPrice はNSE価格を優先し、欠損またはパース不能な場合のみBSE価格を使います。
func primaryPrice(p entity.ExchangePrices) float64 {
	if v := p.NSE.Float(); !math.IsNaN(v) {
		return v
	}
	return p.BSE.Float()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

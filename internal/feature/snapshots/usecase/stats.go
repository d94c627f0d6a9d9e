package usecase

import "stock_dashboard/internal/feature/snapshots/domain/entity"

// MarketStats summarizes the day's movement across the displayed snapshots.
type MarketStats struct {
	Total            int
	Gainers          int
	Losers           int
	AvgChangePercent float64
}

// ComputeStats counts gainers (positive change) and losers (negative change) and averages the percent change.
// An empty collection yields zero values.
func ComputeStats(snapshots []entity.StockSnapshot) MarketStats {
	st := MarketStats{Total: len(snapshots)}
	if len(snapshots) == 0 {
		return st
	}
	var sum float64
	for _, s := range snapshots {
		switch {
		case s.PriceChangePercent > 0:
			st.Gainers++
		case s.PriceChangePercent < 0:
			st.Losers++
		}
		sum += s.PriceChangePercent
	}
	st.AvgChangePercent = sum / float64(len(snapshots))
	return st
}

// Package usecase implements the index price lookup served by the proxy.
package usecase

import (
	"context"

	"stock_dashboard/internal/feature/indexprices/domain/entity"
)

// IndexPriceRepository abstracts where index values come from (NSE, optionally behind a cache).
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type IndexPriceRepository interface {
	LastPrice(ctx context.Context, index string) (entity.IndexQuote, error)
}

// IndexPrices is the set of index values the proxy publishes.
type IndexPrices struct {
	Nifty50 *float64
}

// IndexPriceUsecase provides the index values for the dashboard.
type IndexPriceUsecase struct {
	repo IndexPriceRepository
}

// NewIndexPriceUsecase creates a new IndexPriceUsecase with the given repository.
func NewIndexPriceUsecase(repo IndexPriceRepository) *IndexPriceUsecase {
	return &IndexPriceUsecase{repo: repo}
}

// Prices returns the published index values. A missing value is nil, not an error.
func (u *IndexPriceUsecase) Prices(ctx context.Context) (IndexPrices, error) {
	q, err := u.repo.LastPrice(ctx, entity.Nifty50)
	if err != nil {
		return IndexPrices{}, err
	}
	return IndexPrices{Nifty50: q.Last}, nil
}

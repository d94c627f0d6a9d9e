package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_dashboard/internal/feature/snapshots/domain"
	"stock_dashboard/internal/feature/snapshots/domain/entity"
	"stock_dashboard/internal/feature/snapshots/usecase"
)

func fixedClock() time.Time { return fixedNow }

func TestAggregator_Resolve(t *testing.T) {
	t.Parallel()

	reliance := entity.WatchlistEntry{Name: "Reliance Industries", Symbol: "RELIANCE", Kind: entity.KindEquity}
	nifty := entity.WatchlistEntry{Name: "NIFTY 50", Symbol: "NIFTY 50", Kind: entity.KindIndex}

	tests := []struct {
		name        string
		entry       entity.WatchlistEntry
		quoteFn     func(ctx context.Context, query string) (entity.ProviderQuote, error)
		indexFn     func(ctx context.Context, index string) (float64, error)
		wantStatus  entity.Status
		wantReason  entity.DegradedReason
		wantPrice   float64
		wantName    string
		wantSymbol  string
		wantQuotes  int32
		wantIndexes int32
	}{
		{
			name:  "success: index price becomes a flat snapshot",
			entry: nifty,
			indexFn: func(ctx context.Context, index string) (float64, error) {
				if index != "NIFTY 50" {
					return 0, fmt.Errorf("unexpected index %q", index)
				}
				return 22150.3, nil
			},
			wantStatus:  entity.StatusOK,
			wantPrice:   22150.3,
			wantName:    "NIFTY 50",
			wantSymbol:  "NIFTY 50",
			wantIndexes: 1,
		},
		{
			name:  "degraded: index service failure",
			entry: nifty,
			indexFn: func(ctx context.Context, index string) (float64, error) {
				return 0, domain.ErrIndexUnavailable
			},
			wantStatus:  entity.StatusDegraded,
			wantReason:  entity.ReasonIndexUnavailable,
			wantName:    "NIFTY 50",
			wantSymbol:  "NIFTY 50",
			wantIndexes: 1,
		},
		{
			name:  "success: equity normalized from provider",
			entry: reliance,
			quoteFn: func(ctx context.Context, query string) (entity.ProviderQuote, error) {
				if query != "Reliance Industries" {
					return entity.ProviderQuote{}, fmt.Errorf("unexpected query %q", query)
				}
				return mustQuote(relianceBody), nil
			},
			wantStatus: entity.StatusOK,
			wantPrice:  2834.55,
			wantName:   "Reliance Industries",
			wantSymbol: "RELIANCE",
			wantQuotes: 1,
		},
		{
			name:  "degraded: provider returns 503",
			entry: reliance,
			quoteFn: func(ctx context.Context, query string) (entity.ProviderQuote, error) {
				return entity.ProviderQuote{}, &domain.ProviderError{Provider: "indianapi", StatusCode: 503}
			},
			wantStatus: entity.StatusDegraded,
			wantReason: entity.ReasonProviderError,
			wantName:   "Reliance Industries",
			wantSymbol: "RELIANCE",
			wantQuotes: 1,
		},
		{
			name:  "degraded: unparseable numbers",
			entry: reliance,
			quoteFn: func(ctx context.Context, query string) (entity.ProviderQuote, error) {
				return mustQuote(`{"companyName":"Reliance Industries","currentPrice":{"NSE":"abc"},"percentChange":"1","yearHigh":"1","yearLow":"1"}`), nil
			},
			wantStatus: entity.StatusDegraded,
			wantReason: entity.ReasonMalformedPayload,
			wantName:   "Reliance Industries",
			wantSymbol: "RELIANCE",
			wantQuotes: 1,
		},
		{
			name:  "degraded: inverted 52-week range",
			entry: reliance,
			quoteFn: func(ctx context.Context, query string) (entity.ProviderQuote, error) {
				return mustQuote(`{"companyName":"Reliance Industries","currentPrice":{"NSE":"10"},"percentChange":"1","yearHigh":"5","yearLow":"20"}`), nil
			},
			wantStatus: entity.StatusDegraded,
			wantReason: entity.ReasonMalformedPayload,
			wantName:   "Reliance Industries",
			wantSymbol: "RELIANCE",
			wantQuotes: 1,
		},
		{
			name:  "success: missing identity falls back to the entry",
			entry: entity.NewSearchEntry("infy"),
			quoteFn: func(ctx context.Context, query string) (entity.ProviderQuote, error) {
				return mustQuote(`{"currentPrice":{"NSE":"1500"},"percentChange":"0","yearHigh":"1600","yearLow":"1200"}`), nil
			},
			wantStatus: entity.StatusOK,
			wantPrice:  1500,
			wantName:   "infy",
			wantSymbol: "INFY",
			wantQuotes: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			quotes := &mockQuoteGateway{FetchQuoteFunc: tt.quoteFn}
			index := &mockIndexGateway{LastPriceFunc: tt.indexFn}
			agg := usecase.NewAggregator(quotes, index, usecase.WithAggregatorClock(fixedClock))

			res := agg.Resolve(context.Background(), tt.entry)

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.Equal(t, tt.wantPrice, res.Snapshot.CurrentPrice)
			assert.Equal(t, tt.wantName, res.Snapshot.Name)
			assert.Equal(t, tt.wantSymbol, res.Snapshot.Symbol)
			assert.Equal(t, fixedNow, res.Snapshot.LastUpdated)
			assert.True(t, res.Snapshot.HasFiniteNumbers())
			assert.Equal(t, tt.wantQuotes, quotes.Calls.Load())
			assert.Equal(t, tt.wantIndexes, index.Calls.Load())

			if res.Degraded() {
				require.Error(t, res.Err)
				assert.Zero(t, res.Snapshot.PriceChange)
				assert.Zero(t, res.Snapshot.PriceChangePercent)
				assert.Equal(t, res.Snapshot.CurrentPrice, res.Snapshot.YearHigh)
				assert.Equal(t, res.Snapshot.CurrentPrice, res.Snapshot.YearLow)
			}
		})
	}
}

func TestAggregator_Resolve_ProviderErrorIsKept(t *testing.T) {
	t.Parallel()

	quotes := &mockQuoteGateway{FetchQuoteFunc: func(ctx context.Context, query string) (entity.ProviderQuote, error) {
		return entity.ProviderQuote{}, fmt.Errorf("fetch quote: %w", &domain.ProviderError{Provider: "indianapi", StatusCode: 503})
	}}
	agg := usecase.NewAggregator(quotes, &mockIndexGateway{})

	res := agg.Resolve(context.Background(), entity.WatchlistEntry{Name: "X", Symbol: "X", Kind: entity.KindEquity})

	var pe *domain.ProviderError
	require.True(t, errors.As(res.Err, &pe))
	assert.Equal(t, 503, pe.StatusCode)
}

// The scenario from the dashboard's default watchlist: the index is up, one equity provider call fails.
func TestAggregator_ResolveAll_MixedOutcomes(t *testing.T) {
	t.Parallel()

	quotes := &mockQuoteGateway{FetchQuoteFunc: func(ctx context.Context, query string) (entity.ProviderQuote, error) {
		if query == "Reliance Industries" {
			return entity.ProviderQuote{}, &domain.ProviderError{Provider: "indianapi", StatusCode: 503}
		}
		return mustQuote(fmt.Sprintf(`{"companyName":%q,"currentPrice":{"NSE":"1000"},"percentChange":"-1","yearHigh":"1200","yearLow":"800"}`, query)), nil
	}}
	index := &mockIndexGateway{LastPriceFunc: func(ctx context.Context, index string) (float64, error) {
		return 22150.3, nil
	}}
	agg := usecase.NewAggregator(quotes, index, usecase.WithAggregatorClock(fixedClock))

	entries := entity.DefaultWatchlist()
	out, err := agg.ResolveAll(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, out, len(entries))

	for i, e := range entries {
		assert.Equal(t, e.Name, out[i].Snapshot.Name, "order must follow the watchlist")
	}

	assert.Equal(t, entity.StatusOK, out[0].Status)
	assert.Equal(t, 22150.3, out[0].Snapshot.CurrentPrice)
	assert.Equal(t, 22150.3, out[0].Snapshot.YearHigh)
	assert.Equal(t, 22150.3, out[0].Snapshot.YearLow)

	assert.Equal(t, entity.StatusDegraded, out[1].Status)
	assert.Equal(t, "RELIANCE", out[1].Snapshot.Symbol)
	assert.Zero(t, out[1].Snapshot.CurrentPrice)
	assert.Zero(t, out[1].Snapshot.PriceChange)

	assert.Equal(t, entity.StatusOK, out[2].Status)
	assert.Equal(t, entity.StatusOK, out[3].Status)
	assert.Equal(t, int32(3), quotes.Calls.Load())
	assert.Equal(t, int32(1), index.Calls.Load())
}

func TestAggregator_ResolveAll_OrderIndependentOfCompletion(t *testing.T) {
	t.Parallel()

	entries := []entity.WatchlistEntry{
		{Name: "NIFTY 50", Symbol: "NIFTY 50", Kind: entity.KindIndex},
		{Name: "TCS", Symbol: "TCS", Kind: entity.KindEquity},
		{Name: "Infosys", Symbol: "INFY", Kind: entity.KindEquity},
		{Name: "Wipro", Symbol: "WIPRO", Kind: entity.KindEquity},
	}

	// 先頭の指数は他の全項目が返るまで完了しない
	var laterDone sync.WaitGroup
	laterDone.Add(len(entries) - 1)

	quotes := &mockQuoteGateway{FetchQuoteFunc: func(ctx context.Context, query string) (entity.ProviderQuote, error) {
		defer laterDone.Done()
		return mustQuote(fmt.Sprintf(`{"companyName":%q,"currentPrice":{"NSE":"500"},"percentChange":"0","yearHigh":"600","yearLow":"400"}`, query)), nil
	}}
	index := &mockIndexGateway{LastPriceFunc: func(ctx context.Context, index string) (float64, error) {
		laterDone.Wait()
		return 22150.3, nil
	}}
	agg := usecase.NewAggregator(quotes, index, usecase.WithAggregatorClock(fixedClock))

	out, err := agg.ResolveAll(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, out, len(entries))

	for i, e := range entries {
		assert.Equal(t, e.Name, out[i].Snapshot.Name, "position %d", i)
		assert.Equal(t, entity.StatusOK, out[i].Status)
	}
	assert.Equal(t, 22150.3, out[0].Snapshot.CurrentPrice)
}

func TestAggregator_ResolveAll_Empty(t *testing.T) {
	t.Parallel()

	agg := usecase.NewAggregator(&mockQuoteGateway{}, &mockIndexGateway{})
	out, err := agg.ResolveAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAggregator_ResolveAll_PanicIsAggregateFailure(t *testing.T) {
	t.Parallel()

	quotes := &mockQuoteGateway{FetchQuoteFunc: func(ctx context.Context, query string) (entity.ProviderQuote, error) {
		panic("provider client bug")
	}}
	agg := usecase.NewAggregator(quotes, &mockIndexGateway{})

	out, err := agg.ResolveAll(context.Background(), []entity.WatchlistEntry{{Name: "TCS", Symbol: "TCS", Kind: entity.KindEquity}})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "provider client bug")
}

func TestAggregator_Resolve_CancelledContextDegrades(t *testing.T) {
	t.Parallel()

	quotes := &mockQuoteGateway{FetchQuoteFunc: func(ctx context.Context, query string) (entity.ProviderQuote, error) {
		return entity.ProviderQuote{}, ctx.Err()
	}}
	agg := usecase.NewAggregator(quotes, &mockIndexGateway{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := agg.Resolve(ctx, entity.WatchlistEntry{Name: "TCS", Symbol: "TCS", Kind: entity.KindEquity})
	assert.True(t, res.Degraded())
	assert.ErrorIs(t, res.Err, context.Canceled)
}

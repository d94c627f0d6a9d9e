package usecase_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"stock_dashboard/internal/feature/snapshots/domain/entity"
)

// mockQuoteGateway はQuoteGatewayインターフェースのモック実装です。
type mockQuoteGateway struct {
	FetchQuoteFunc func(ctx context.Context, query string) (entity.ProviderQuote, error)
	Calls          atomic.Int32
}

// FetchQuote はFetchQuoteFuncが設定されていればそれを呼び出し、呼び出し回数を記録します。
func (m *mockQuoteGateway) FetchQuote(ctx context.Context, query string) (entity.ProviderQuote, error) {
	m.Calls.Add(1)
	if m.FetchQuoteFunc != nil {
		return m.FetchQuoteFunc(ctx, query)
	}
	return entity.ProviderQuote{}, errors.New("FetchQuoteFunc is not implemented")
}

// mockIndexGateway はIndexPriceGatewayインターフェースのモック実装です。
type mockIndexGateway struct {
	LastPriceFunc func(ctx context.Context, index string) (float64, error)
	Calls         atomic.Int32
}

// LastPrice はLastPriceFuncが設定されていればそれを呼び出し、呼び出し回数を記録します。
func (m *mockIndexGateway) LastPrice(ctx context.Context, index string) (float64, error) {
	m.Calls.Add(1)
	if m.LastPriceFunc != nil {
		return m.LastPriceFunc(ctx, index)
	}
	return 0, errors.New("LastPriceFunc is not implemented")
}

// mockResolver はSnapshotResolverインターフェースのモック実装です。
type mockResolver struct {
	ResolveAllFunc func(ctx context.Context, entries []entity.WatchlistEntry) ([]entity.Resolution, error)
	Calls          atomic.Int32
}

// ResolveAll はResolveAllFuncが設定されていればそれを呼び出します。
// 未設定の場合は各項目を価格100のスナップショットに解決します。
func (m *mockResolver) ResolveAll(ctx context.Context, entries []entity.WatchlistEntry) ([]entity.Resolution, error) {
	m.Calls.Add(1)
	if m.ResolveAllFunc != nil {
		return m.ResolveAllFunc(ctx, entries)
	}
	out := make([]entity.Resolution, len(entries))
	for i, e := range entries {
		out[i] = entity.Resolved(entity.StockSnapshot{Name: e.Name, Symbol: e.Symbol, CurrentPrice: 100, YearHigh: 100, YearLow: 100})
	}
	return out, nil
}

// mockStore はWatchlistStoreインターフェースのモック実装です。
type mockStore struct {
	mu          sync.Mutex
	ListFunc    func(ctx context.Context) ([]entity.WatchlistEntry, error)
	PrependFunc func(ctx context.Context, e entity.WatchlistEntry) error
	Prepended   []entity.WatchlistEntry
}

// List はListFuncが設定されていればそれを呼び出します。
func (m *mockStore) List(ctx context.Context) ([]entity.WatchlistEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// Prepend は追加された項目を記録します。
func (m *mockStore) Prepend(ctx context.Context, e entity.WatchlistEntry) error {
	m.mu.Lock()
	m.Prepended = append(m.Prepended, e)
	m.mu.Unlock()
	if m.PrependFunc != nil {
		return m.PrependFunc(ctx, e)
	}
	return nil
}

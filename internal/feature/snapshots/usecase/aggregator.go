package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"stock_dashboard/internal/feature/snapshots/domain/entity"
)

// QuoteGateway は外部の株価プロバイダーから生データを取得します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteGateway interface {
	FetchQuote(ctx context.Context, query string) (entity.ProviderQuote, error)
}

// IndexPriceGateway は指数価格サービスから最新値を取得します。
type IndexPriceGateway interface {
	LastPrice(ctx context.Context, index string) (float64, error)
}

var errMalformedQuote = errors.New("malformed quote")

// Aggregator は1つのウォッチリスト項目を表示用スナップショットに解決します。
// 解決は失敗しません。取得や検証に失敗した場合はプレースホルダーを返します。
type Aggregator struct {
	quotes QuoteGateway
	index  IndexPriceGateway
	now    func() time.Time
}

// AggregatorOption はAggregatorの設定を変更します。
type AggregatorOption func(*Aggregator)

// WithAggregatorClock はスナップショットのLastUpdatedに使う時計を差し替えます。
func WithAggregatorClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		a.now = now
	}
}

// NewAggregator は指定されたゲートウェイでAggregatorを生成します。
func NewAggregator(quotes QuoteGateway, index IndexPriceGateway, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{quotes: quotes, index: index, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Resolve は項目の種別に応じてゲートウェイを選び、スナップショットを生成します。
func (a *Aggregator) Resolve(ctx context.Context, e entity.WatchlistEntry) entity.Resolution {
	now := a.now()

	if e.Kind == entity.KindIndex {
		price, err := a.index.LastPrice(ctx, e.Name)
		if err == nil && !validPrice(price) {
			err = fmt.Errorf("%w: index price %v", errMalformedQuote, price)
		}
		if err != nil {
			return a.degrade(e, entity.ReasonIndexUnavailable, err, now)
		}
		return entity.Resolved(entity.NewPlaceholder(e.Name, e.Symbol, price, now))
	}

	raw, err := a.quotes.FetchQuote(ctx, e.Name)
	if err != nil {
		return a.degrade(e, entity.ReasonProviderError, err, now)
	}

	s := Normalize(raw, now)
	if s.Name == "" {
		s.Name = e.Name
	}
	if s.Symbol == "" {
		s.Symbol = e.Symbol
	}
	if err := validateSnapshot(s); err != nil {
		return a.degrade(e, entity.ReasonMalformedPayload, err, now)
	}
	return entity.Resolved(s)
}

// ResolveAll は全項目を並行に解決し、入力と同じ順序で結果を返します。
// エラーになるのはフォールバックの外側で解決が異常終了した場合だけです。
func (a *Aggregator) ResolveAll(ctx context.Context, entries []entity.WatchlistEntry) ([]entity.Resolution, error) {
	out := make([]entity.Resolution, len(entries))

	var g errgroup.Group
	for i, e := range entries {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("resolve %q: %v", e.Symbol, r)
				}
			}()
			out[i] = a.Resolve(ctx, e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Aggregator) degrade(e entity.WatchlistEntry, reason entity.DegradedReason, err error, now time.Time) entity.Resolution {
	slog.Warn("snapshot degraded to placeholder",
		"name", e.Name, "symbol", e.Symbol, "kind", e.Kind, "reason", reason, "error", err)
	return entity.DegradedTo(entity.NewPlaceholder(e.Name, e.Symbol, 0, now), reason, err)
}

func validPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// validateSnapshot は正規化結果が表示可能な数値だけで構成されているかを検証します。
func validateSnapshot(s entity.StockSnapshot) error {
	if !s.HasFiniteNumbers() {
		return fmt.Errorf("%w: non-numeric field for %q", errMalformedQuote, s.Symbol)
	}
	if s.CurrentPrice < 0 {
		return fmt.Errorf("%w: negative price %v for %q", errMalformedQuote, s.CurrentPrice, s.Symbol)
	}
	if s.YearHigh < s.YearLow {
		return fmt.Errorf("%w: year high %v below year low %v for %q", errMalformedQuote, s.YearHigh, s.YearLow, s.Symbol)
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"stock_dashboard/internal/feature/snapshots/domain"
	"stock_dashboard/internal/feature/snapshots/domain/entity"
)

// SnapshotResolver は複数の項目をまとめて解決します。
// 返されるエラーはフォールバック経路の外側で起きた異常だけです。
type SnapshotResolver interface {
	ResolveAll(ctx context.Context, entries []entity.WatchlistEntry) ([]entity.Resolution, error)
}

// WatchlistStore はウォッチリスト項目の永続化レイヤーを抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistStore interface {
	// List は表示順に項目を返します。
	List(ctx context.Context) ([]entity.WatchlistEntry, error)
	// Prepend は項目を先頭に追加します。
	Prepend(ctx context.Context, e entity.WatchlistEntry) error
}

// WatchlistStatus はUIが表示するフラグと通知のスナップショットです。
type WatchlistStatus struct {
	Loading    bool
	Refreshing bool
	Searching  bool
	Generation uint64
	Notice     string
}

// WatchlistUsecase はウォッチリストとスナップショット集合の唯一の所有者です。
// 状態の書き換えはすべてmuの下で行います。
// generation は状態が変わるたびに進み、refreshEpoch はリフレッシュの開始とLoadでだけ進みます。
// 古いリフレッシュ結果を破棄するのは、より新しいリフレッシュ（またはLoad）が始まった場合だけです。
type WatchlistUsecase struct {
	resolver SnapshotResolver
	store    WatchlistStore
	notice   *Notice

	mu           sync.Mutex
	entries      []entity.WatchlistEntry
	cards        []entity.Resolution
	generation   uint64
	refreshEpoch uint64
	loading      bool
	refreshing   int
	searching    int
}

// WatchlistOption はWatchlistUsecaseの設定を変更します。
type WatchlistOption func(*WatchlistUsecase)

// WithNotice は通知チャネルを差し替えます（テストで時計を固定する場合など）。
func WithNotice(n *Notice) WatchlistOption {
	return func(u *WatchlistUsecase) {
		u.notice = n
	}
}

// NewWatchlistUsecase はデフォルトのウォッチリストでWatchlistUsecaseを生成します。
// 永続化された項目を使う場合はLoadを呼び出してください。
func NewWatchlistUsecase(resolver SnapshotResolver, store WatchlistStore, opts ...WatchlistOption) *WatchlistUsecase {
	u := &WatchlistUsecase{
		resolver: resolver,
		store:    store,
		notice:   NewNotice(NoticeTTL, time.Now),
		entries:  entity.DefaultWatchlist(),
		loading:  true,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Load はストアから項目を読み込みます。ストアが空の場合はデフォルトのウォッチリストを維持します。
func (u *WatchlistUsecase) Load(ctx context.Context) error {
	entries, err := u.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load watchlist: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.entries = entries
	u.generation++
	u.refreshEpoch++
	return nil
}

// RefreshAll は現在の全項目を並行に再取得し、スナップショット集合を置き換えます。
// リフレッシュ中に検索で追加された項目のカードは結果の先頭に残します。
//
// 集約全体が失敗した場合、またはctxが途中でキャンセルされた場合は以前の集合を保持してErrLoadFailedを返します。
// 完了時により新しいリフレッシュが始まっていれば結果を破棄してErrSupersededを返します。
func (u *WatchlistUsecase) RefreshAll(ctx context.Context) ([]entity.Resolution, error) {
	u.notice.Clear()

	u.mu.Lock()
	u.generation++
	u.refreshEpoch++
	epoch := u.refreshEpoch
	entries := slices.Clone(u.entries)
	u.refreshing++
	u.mu.Unlock()

	cards, err := u.resolver.ResolveAll(ctx, entries)
	if err == nil && ctx.Err() != nil {
		// キャンセルされた取得はプレースホルダーに縮退しているため採用しない
		err = ctx.Err()
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.refreshing--
	u.loading = false

	if err != nil {
		slog.Error("failed to refresh watchlist", "epoch", epoch, "error", err)
		u.notice.Publish(domain.UserMessage(domain.ErrLoadFailed))
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}
	if epoch != u.refreshEpoch {
		slog.Info("discarding superseded refresh", "epoch", epoch, "latest", u.refreshEpoch)
		return nil, domain.ErrSuperseded
	}

	// 項目は先頭への追加しかないため、増えた分が検索で追加された項目とそのカード
	added := min(len(u.entries)-len(entries), len(u.cards))
	merged := make([]entity.Resolution, 0, added+len(cards))
	merged = append(merged, u.cards[:added]...)
	merged = append(merged, cards...)

	u.cards = merged
	u.generation++
	return slices.Clone(merged), nil
}

// Search は入力された名前またはシンボルを解決し、結果をリストの先頭に追加します。
func (u *WatchlistUsecase) Search(ctx context.Context, term string) (entity.Resolution, error) {
	entry := entity.NewSearchEntry(term)
	if entry.Name == "" {
		return u.reject(domain.ErrEmptyInput)
	}

	u.mu.Lock()
	if u.containsLocked(entry.Name) {
		u.mu.Unlock()
		return u.reject(domain.ErrAlreadyPresent)
	}
	u.searching++
	u.mu.Unlock()
	u.notice.Clear()

	res, err := u.resolver.ResolveAll(ctx, []entity.WatchlistEntry{entry})

	u.mu.Lock()
	u.searching--
	if err == nil && ctx.Err() != nil {
		u.mu.Unlock()
		return entity.Resolution{}, ctx.Err()
	}
	if err != nil || len(res) != 1 {
		u.mu.Unlock()
		slog.Warn("search resolution failed", "term", entry.Name, "error", err)
		return u.reject(domain.ErrNotFound)
	}
	// 解決中に同じ銘柄が追加された可能性があるため再確認する
	if u.containsLocked(entry.Name) {
		u.mu.Unlock()
		return u.reject(domain.ErrAlreadyPresent)
	}
	card := res[0]
	u.entries = slices.Insert(u.entries, 0, entry)
	u.cards = slices.Insert(u.cards, 0, card)
	u.generation++
	u.mu.Unlock()

	if err := u.store.Prepend(ctx, entry); err != nil {
		slog.Warn("failed to persist watchlist entry", "symbol", entry.Symbol, "error", err)
	}
	return card, nil
}

// Filter は名前またはシンボルに部分一致（大文字小文字を区別しない）するカードを返します。
// 空の検索語はすべてを返します。状態は変更しません。
func (u *WatchlistUsecase) Filter(term string) []entity.Resolution {
	t := strings.ToLower(strings.TrimSpace(term))

	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]entity.Resolution, 0, len(u.cards))
	for _, c := range u.cards {
		if t == "" ||
			strings.Contains(strings.ToLower(c.Snapshot.Name), t) ||
			strings.Contains(strings.ToLower(c.Snapshot.Symbol), t) {
			out = append(out, c)
		}
	}
	return out
}

// Snapshots は現在のスナップショット集合を表示順で返します。
func (u *WatchlistUsecase) Snapshots() []entity.StockSnapshot {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]entity.StockSnapshot, len(u.cards))
	for i, c := range u.cards {
		out[i] = c.Snapshot
	}
	return out
}

// Entries は現在のウォッチリスト項目を表示順で返します。
func (u *WatchlistUsecase) Entries() []entity.WatchlistEntry {
	u.mu.Lock()
	defer u.mu.Unlock()
	return slices.Clone(u.entries)
}

// Stats は現在の集合に対する騰落統計を返します。
func (u *WatchlistUsecase) Stats() MarketStats {
	return ComputeStats(u.Snapshots())
}

// Status は読み込み中フラグと現在の通知を返します。
func (u *WatchlistUsecase) Status() WatchlistStatus {
	u.mu.Lock()
	defer u.mu.Unlock()
	return WatchlistStatus{
		Loading:    u.loading,
		Refreshing: u.refreshing > 0,
		Searching:  u.searching > 0,
		Generation: u.generation,
		Notice:     u.notice.Current(),
	}
}

func (u *WatchlistUsecase) reject(err error) (entity.Resolution, error) {
	u.notice.Publish(domain.UserMessage(err))
	return entity.Resolution{}, err
}

// containsLocked は項目またはスナップショットに同一の名前・シンボルがあるかを返します。呼び出し側がmuを保持していること。
func (u *WatchlistUsecase) containsLocked(term string) bool {
	for _, e := range u.entries {
		if e.Matches(term) {
			return true
		}
	}
	for _, c := range u.cards {
		if c.Snapshot.Matches(term) {
			return true
		}
	}
	return false
}

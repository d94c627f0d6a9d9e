// Package adapters はsnapshotsフィーチャーのウォッチリストストア実装を提供します。
package adapters

import (
	"context"
	"slices"
	"sync"

	"stock_dashboard/internal/feature/snapshots/domain/entity"
	"stock_dashboard/internal/feature/snapshots/usecase"
)

// watchlistMemory はプロセス内だけで保持するWatchlistStore実装です。再起動で失われます。
type watchlistMemory struct {
	mu      sync.Mutex
	entries []entity.WatchlistEntry
}

var _ usecase.WatchlistStore = (*watchlistMemory)(nil)

// NewWatchlistMemory は初期項目を持つインメモリストアを生成します。
func NewWatchlistMemory(seed []entity.WatchlistEntry) *watchlistMemory {
	return &watchlistMemory{entries: slices.Clone(seed)}
}

// List は表示順に項目のコピーを返します。
func (m *watchlistMemory) List(ctx context.Context) ([]entity.WatchlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries), nil
}

// Prepend は項目を先頭に追加します。
func (m *watchlistMemory) Prepend(ctx context.Context, e entity.WatchlistEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = slices.Insert(m.entries, 0, e)
	return nil
}

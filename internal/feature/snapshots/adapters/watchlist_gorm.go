package adapters

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_dashboard/internal/feature/snapshots/domain/entity"
	"stock_dashboard/internal/feature/snapshots/usecase"
)

// WatchlistEntryModel is the persisted form of a watchlist entry.
// Rows are displayed in sort_key order; prepending uses a key below the current minimum.
type WatchlistEntryModel struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:64;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Kind      string    `gorm:"size:16;not null;default:equity"`
	SortKey   int       `gorm:"not null;default:0;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName pins the table name.
func (WatchlistEntryModel) TableName() string { return "watchlist_entries" }

// watchlistGorm はWatchlistStoreインターフェースのgorm実装です（SQLite / PostgreSQL）。
type watchlistGorm struct {
	db *gorm.DB
}

var _ usecase.WatchlistStore = (*watchlistGorm)(nil)

// NewWatchlistRepository は指定されたDB接続でwatchlistGormリポジトリの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// List はsort_key順にすべての項目を返します。
func (r *watchlistGorm) List(ctx context.Context) ([]entity.WatchlistEntry, error) {
	var rows []WatchlistEntryModel
	if err := r.db.WithContext(ctx).
		Order("sort_key ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.WatchlistEntry, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.WatchlistEntry{Name: m.Name, Symbol: m.Symbol, Kind: entity.Kind(m.Kind)})
	}
	return out, nil
}

// Prepend は現在の最小sort_keyより小さいキーで項目を追加します。
// 同じシンボルが既に保存されている場合は何もしません。
func (r *watchlistGorm) Prepend(ctx context.Context, e entity.WatchlistEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var minKey sql.NullInt64
		if err := tx.Model(&WatchlistEntryModel{}).
			Select("MIN(sort_key)").
			Row().
			Scan(&minKey); err != nil {
			return err
		}
		key := 0
		if minKey.Valid {
			key = int(minKey.Int64) - 1
		}
		row := WatchlistEntryModel{Name: e.Name, Symbol: e.Symbol, Kind: string(e.Kind), SortKey: key}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}},
			DoNothing: true,
		}).Create(&row).Error
	})
}

// SeedIfEmpty はテーブルが空の場合だけ初期項目を順番に保存します。
func (r *watchlistGorm) SeedIfEmpty(ctx context.Context, seed []entity.WatchlistEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&WatchlistEntryModel{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 || len(seed) == 0 {
			return nil
		}
		rows := make([]WatchlistEntryModel, 0, len(seed))
		for i, e := range seed {
			rows = append(rows, WatchlistEntryModel{Name: e.Name, Symbol: e.Symbol, Kind: string(e.Kind), SortKey: i})
		}
		return tx.Create(&rows).Error
	})
}

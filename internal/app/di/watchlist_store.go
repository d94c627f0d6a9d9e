package di

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gorm.io/gorm"

	"stock_dashboard/internal/feature/snapshots/adapters"
	"stock_dashboard/internal/feature/snapshots/domain/entity"
	"stock_dashboard/internal/feature/snapshots/usecase"
	infradb "stock_dashboard/internal/platform/db"
)

// LoadSeed returns the initial watchlist: the YAML file named by WATCHLIST_FILE, or the built-in defaults.
func LoadSeed() ([]entity.WatchlistEntry, error) {
	path := os.Getenv("WATCHLIST_FILE")
	if path == "" {
		return entity.DefaultWatchlist(), nil
	}
	seed, err := adapters.LoadWatchlistFile(path)
	if err != nil {
		return nil, fmt.Errorf("load watchlist file: %w", err)
	}
	slog.Info("watchlist seed loaded", "path", path, "entries", len(seed))
	return seed, nil
}

// NewWatchlistStore creates a WatchlistStore implementation.
// If a database is configured, it returns a gorm-backed store seeded once with seed.
// Otherwise, it falls back to memory. The returned *gorm.DB is nil for the memory store.
func NewWatchlistStore(ctx context.Context, cfg infradb.Config, seed []entity.WatchlistEntry) (usecase.WatchlistStore, *gorm.DB, error) {
	if !cfg.Enabled() {
		return adapters.NewWatchlistMemory(seed), nil, nil
	}

	db, err := infradb.OpenDB(cfg, &adapters.WatchlistEntryModel{})
	if err != nil {
		return nil, nil, err
	}
	repo := adapters.NewWatchlistRepository(db)
	if err := repo.SeedIfEmpty(ctx, seed); err != nil {
		return nil, nil, fmt.Errorf("seed watchlist: %w", err)
	}
	return repo, db, nil
}

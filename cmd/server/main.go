package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/app/router"
	"stock_dashboard/internal/feature/snapshots/domain"
	snapshothandler "stock_dashboard/internal/feature/snapshots/transport/handler"
	"stock_dashboard/internal/feature/snapshots/usecase"
	infradb "stock_dashboard/internal/platform/db"
	"stock_dashboard/internal/platform/http/handler"
	"stock_dashboard/internal/platform/scheduler"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	ctx := context.Background()

	// Watchlist
	seed, err := di.LoadSeed()
	if err != nil {
		log.Fatal(err)
	}
	store, db, err := di.NewWatchlistStore(ctx, infradb.LoadConfigFromEnv(), seed)
	if err != nil {
		log.Fatal(err)
	}

	checks := map[string]handler.Check{}
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err := sqlDB.Close(); err != nil {
				log.Println("[ERROR] Failed to close database:", err)
			}
		}()
		checks["db"] = sqlDB.PingContext
	}

	// Usecase
	watchlistUC := usecase.NewWatchlistUsecase(di.NewAggregator(), store)
	if err := watchlistUC.Load(ctx); err != nil {
		log.Fatal("failed to load watchlist:", err)
	}

	// 初回の取得はバックグラウンドで行い、その間 /status は loading を返す
	go func() {
		if _, err := watchlistUC.RefreshAll(ctx); err != nil {
			slog.Warn("initial refresh failed", "error", err)
		}
	}()

	// 定期更新（REFRESH_SCHEDULE が空なら無効）
	if spec := scheduler.SpecFromEnv("REFRESH_SCHEDULE"); spec != "" {
		sched := scheduler.New(time.Local, scheduler.DefaultJobTimeout)
		err := sched.Add("refresh-all", spec, func(ctx context.Context) error {
			_, err := watchlistUC.RefreshAll(ctx)
			if errors.Is(err, domain.ErrSuperseded) {
				return nil
			}
			return err
		})
		if err != nil {
			log.Fatal(err)
		}
		if err := sched.Start(); err != nil {
			log.Fatal(err)
		}
		defer sched.Stop()
	}

	// Handler
	snapshotH := snapshothandler.NewSnapshotHandler(watchlistUC)

	// ルータ生成
	r := router.NewRouter(snapshotH, handler.Ready(2*time.Second, checks))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

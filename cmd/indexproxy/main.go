package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/app/router"
	indexpricehandler "stock_dashboard/internal/feature/indexprices/transport/handler"
	indexpriceusecase "stock_dashboard/internal/feature/indexprices/usecase"
	"stock_dashboard/internal/platform/http/handler"
	infraredis "stock_dashboard/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// Redis
	var rdb *redisv9.Client
	checks := map[string]handler.Check{}
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// Repository（Redisキャッシュでラップ）
	repo := di.NewIndexPriceRepository(rdb)

	// 前回のプロセスが残した値は使わない
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := repo.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate index price cache", "error", err)
	}
	cancel()

	// Usecase / Handler
	indexUC := indexpriceusecase.NewIndexPriceUsecase(repo)
	indexH := indexpricehandler.NewIndexPriceHandler(indexUC)

	// ルータ生成
	r := router.NewIndexProxyRouter(indexH, handler.Ready(2*time.Second, checks))

	port := os.Getenv("INDEX_PROXY_PORT")
	if port == "" {
		port = "5000"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

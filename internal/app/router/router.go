// Package router はアプリケーションのginルーターを組み立てます。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	indexpricehandler "stock_dashboard/internal/feature/indexprices/transport/handler"
	snapshothandler "stock_dashboard/internal/feature/snapshots/transport/handler"
	"stock_dashboard/internal/platform/http/handler"
)

// NewRouter はダッシュボードAPIのルーターを生成します。
func NewRouter(snapshots *snapshothandler.SnapshotHandler, ready gin.HandlerFunc) *gin.Engine {
	r := gin.Default()
	// ブラウザのダッシュボードから直接呼ばれるため全オリジンを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", ready)

	stocks := r.Group("/stocks")
	{
		stocks.GET("", snapshots.List)
		stocks.POST("/refresh", snapshots.Refresh)
		stocks.POST("/search", snapshots.Search)
		stocks.GET("/stats", snapshots.Stats)
	}
	r.GET("/status", snapshots.Status)

	return r
}

// NewIndexProxyRouter は指数価格プロキシのルーターを生成します。
func NewIndexProxyRouter(index *indexpricehandler.IndexPriceHandler, ready gin.HandlerFunc) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", ready)

	r.GET("/api/index-prices", index.Get)

	return r
}

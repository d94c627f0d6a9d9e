// Package handler はindexpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/indexprices/usecase"
)

// IndexPriceUsecase は指数価格取得のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type IndexPriceUsecase interface {
	Prices(ctx context.Context) (usecase.IndexPrices, error)
}

// indexPricesResponse は GET /api/index-prices のレスポンスです。値がない場合はnullになります。
type indexPricesResponse struct {
	Nifty50 *float64 `json:"nifty50"`
}

// IndexPriceHandler は指数価格のHTTPリクエストを処理します。
type IndexPriceHandler struct {
	uc IndexPriceUsecase
}

// NewIndexPriceHandler は新しい IndexPriceHandler を作成します。
func NewIndexPriceHandler(uc IndexPriceUsecase) *IndexPriceHandler {
	return &IndexPriceHandler{uc: uc}
}

// Get は最新の指数価格を返します。
//
// エンドポイント例:
// GET /api/index-prices -> {"nifty50": 22150.3}
func (h *IndexPriceHandler) Get(c *gin.Context) {
	p, err := h.uc.Prices(c.Request.Context())
	if err != nil {
		slog.Error("failed to fetch index prices", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch indices."})
		return
	}
	c.JSON(http.StatusOK, indexPricesResponse{Nifty50: p.Nifty50})
}

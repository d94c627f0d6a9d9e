// Package handler はsnapshotsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/snapshots/domain"
	"stock_dashboard/internal/feature/snapshots/domain/entity"
	"stock_dashboard/internal/feature/snapshots/transport/http/dto"
	"stock_dashboard/internal/feature/snapshots/usecase"
)

// WatchlistUsecase はダッシュボードが呼び出すウォッチリスト操作のインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	RefreshAll(ctx context.Context) ([]entity.Resolution, error)
	Search(ctx context.Context, term string) (entity.Resolution, error)
	Filter(term string) []entity.Resolution
	Stats() usecase.MarketStats
	Status() usecase.WatchlistStatus
}

// SnapshotHandler はスナップショット関連のHTTPリクエストを処理します。
type SnapshotHandler struct {
	uc WatchlistUsecase
}

// NewSnapshotHandler は新しい SnapshotHandler を作成します。
func NewSnapshotHandler(uc WatchlistUsecase) *SnapshotHandler {
	return &SnapshotHandler{uc: uc}
}

// List は現在のカードを返します。qが指定された場合は名前・シンボルで絞り込みます。
//
// エンドポイント例:
// GET /stocks?q=bank
func (h *SnapshotHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromResolutions(h.uc.Filter(c.Query("q"))))
}

// Refresh は全銘柄を再取得します。
// 集約全体が失敗した場合は500、新しい更新に追い越された場合は409を返します。
// 集合は全閲覧者で共有されるため、クライアントが切断しても取得は最後まで続けます。
func (h *SnapshotHandler) Refresh(c *gin.Context) {
	cards, err := h.uc.RefreshAll(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromResolutions(cards))
}

// Search は名前またはシンボルで銘柄を追加し、追加されたカードを201で返します。
func (h *SnapshotHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	card, err := h.uc.Search(context.WithoutCancel(c.Request.Context()), req.Term)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromResolution(card))
}

// Stats は値上がり・値下がり銘柄数と平均騰落率を返します。
func (h *SnapshotHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromStats(h.uc.Stats()))
}

// Status は読み込み中フラグと表示中の通知を返します。
func (h *SnapshotHandler) Status(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.FromStatus(h.uc.Status()))
}

// writeError はドメインエラーをHTTPステータスに変換します。
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyPresent), errors.Is(err, domain.ErrSuperseded):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	}

	msg := domain.UserMessage(err)
	if msg == "" {
		msg = err.Error()
	}
	c.JSON(status, dto.ErrorResponse{Error: msg})
}

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	indexpricehandler "stock_dashboard/internal/feature/indexprices/transport/handler"
	indexpriceusecase "stock_dashboard/internal/feature/indexprices/usecase"
	"stock_dashboard/internal/feature/snapshots/domain/entity"
	snapshothandler "stock_dashboard/internal/feature/snapshots/transport/handler"
	"stock_dashboard/internal/feature/snapshots/usecase"
	"stock_dashboard/internal/platform/http/handler"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubWatchlist はルーティング確認用の最小実装です。
type stubWatchlist struct{}

func (stubWatchlist) RefreshAll(ctx context.Context) ([]entity.Resolution, error) { return nil, nil }
func (stubWatchlist) Search(ctx context.Context, term string) (entity.Resolution, error) {
	return entity.Resolution{}, nil
}
func (stubWatchlist) Filter(term string) []entity.Resolution { return nil }
func (stubWatchlist) Stats() usecase.MarketStats { return usecase.MarketStats{} }
func (stubWatchlist) Status() usecase.WatchlistStatus { return usecase.WatchlistStatus{} }

type stubIndexPrices struct{}

func (stubIndexPrices) Prices(ctx context.Context) (indexpriceusecase.IndexPrices, error) {
	v := 22150.3
	return indexpriceusecase.IndexPrices{Nifty50: &v}, nil
}

func routeSet(r *gin.Engine) map[string]bool {
	out := map[string]bool{}
	for _, ri := range r.Routes() {
		out[ri.Method+" "+ri.Path] = true
	}
	return out
}

func TestNewRouter_Routes(t *testing.T) {
	t.Parallel()

	r := NewRouter(snapshothandler.NewSnapshotHandler(stubWatchlist{}), handler.Ready(time.Second, nil))
	routes := routeSet(r)

	for _, want := range []string{
		"GET /healthz",
		"HEAD /healthz",
		"GET /readyz",
		"GET /stocks",
		"POST /stocks/refresh",
		"POST /stocks/search",
		"GET /stocks/stats",
		"GET /status",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestNewIndexProxyRouter_CORS(t *testing.T) {
	t.Parallel()

	r := NewIndexProxyRouter(indexpricehandler.NewIndexPriceHandler(stubIndexPrices{}), handler.Ready(time.Second, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/index-prices", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"nifty50":22150.3}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

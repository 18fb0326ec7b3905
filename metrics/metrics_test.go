package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecordPlacement(t *testing.T) {
	WagersPlaced.Reset()

	RecordPlacement("spread", decimal.NewFromInt(100))
	RecordPlacement("spread", decimal.NewFromInt(50))
	RecordPlacement("moneyline", decimal.NewFromInt(25))

	assert.Equal(t, float64(2), testutil.ToFloat64(WagersPlaced.WithLabelValues("spread")))
	assert.Equal(t, float64(1), testutil.ToFloat64(WagersPlaced.WithLabelValues("moneyline")))
}

func TestRecordSettlement(t *testing.T) {
	WagersSettled.Reset()

	RecordSettlement("won", decimal.NewFromInt(250))
	RecordSettlement("lost", decimal.Zero)

	assert.Equal(t, float64(1), testutil.ToFloat64(WagersSettled.WithLabelValues("won")))
	assert.Equal(t, float64(1), testutil.ToFloat64(WagersSettled.WithLabelValues("lost")))
}

func TestRecordRejection(t *testing.T) {
	Rejections.Reset()

	RecordRejection("place_wager", "insufficient_balance")
	RecordRejection("place_wager", "insufficient_balance")

	assert.Equal(t, float64(2), testutil.ToFloat64(Rejections.WithLabelValues("place_wager", "insufficient_balance")))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	HTTPRequestsTotal.Reset()

	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/wagers/{wagerID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/wagers/42", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/wagers/{wagerID}", "404")))
}

package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/saandeepkondury/py-trends-API/config"
	"github.com/saandeepkondury/py-trends-API/metric"
	"github.com/saandeepkondury/py-trends-API/model"
	"github.com/saandeepkondury/py-trends-API/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct{}

func (stubClient) BuildPayload(context.Context, model.TrendQuery) error { return nil }

func (stubClient) InterestOverTime(context.Context) (*model.Table, error) {
	return &model.Table{
		Index:   "date",
		Columns: []string{"golang", "isPartial"},
		Rows:    []model.TableRow{{Index: "2024-01-07T00:00:00", Values: []any{45.0, false}}},
	}, nil
}

func (stubClient) RelatedQueries(context.Context) (map[string]model.RelatedTables, error) {
	return map[string]model.RelatedTables{}, nil
}

func newTestRouter(t *testing.T, apiKey string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.SystemConfigs{Config: &model.EnvConfig{
		Port:        "8080",
		ApiKey:      apiKey,
		CorsOrigins: []string{"*"},
	}}
	return SetupRouter(cfg, func() service.TrendsClient { return stubClient{} }, metric.NewMetrics())
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, "s3cret")

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/health", nil)
			req.Header.Set("X-API-Key", "wrong")
			w := serve(r, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			if method == http.MethodGet {
				assert.JSONEq(t, `{"ok":true}`, w.Body.String())
			}
		})
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := serve(r, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, "s3cret")

	req := httptest.NewRequest(http.MethodOptions, "/trends/interest_over_time", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-API-Key, Content-Type")
	w := serve(r, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestInterestOverTimeThroughRouter(t *testing.T) {
	r := newTestRouter(t, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/trends/interest_over_time",
		strings.NewReader(`{"keywords":["golang"],"geo":"US"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "s3cret")
	req.Header.Set("Origin", "https://example.com")
	w := serve(r, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, "$schema")
	meta := body["meta"].(map[string]any)
	assert.Equal(t, "US", meta["geo"])
	assert.Equal(t, false, meta["isPartialAny"])
}

func TestUnauthorizedThroughRouter(t *testing.T) {
	r := newTestRouter(t, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/trends/related_queries",
		strings.NewReader(`{"keywords":["golang"]}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}

func TestOpenAPIDocument(t *testing.T) {
	r := newTestRouter(t, "s3cret")

	w := serve(r, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/trends/interest_over_time")
	assert.Contains(t, w.Body.String(), "/trends/related_queries")
	assert.Contains(t, w.Body.String(), "X-API-Key")
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, "")

	serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `trends_api_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

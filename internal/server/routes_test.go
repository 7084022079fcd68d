package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamyashsharma43/SENTIFY/internal/config"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/handlers"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
	"github.com/iamyashsharma43/SENTIFY/internal/server"
)

type healthyDB struct{}

func (healthyDB) HealthCheck(context.Context) error { return nil }

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		App:    config.AppSettings{Environment: constants.EnvTesting, Version: "9.9.9"},
		Server: config.ServerSettings{Port: constants.DefaultServerPort},
		CORS: config.CORSSettings{
			AllowedOrigin:  constants.DefaultCORSOrigin,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		},
		Logging:   config.LoggingSettings{NoRequestLog: true},
		RateLimit: config.RateLimitSettings{RequestsPerSecond: 0.001, Burst: 2},
		Uploads:   config.UploadSettings{MaxSize: constants.MaxUploadSize},
	}
}

func newTestServer(t *testing.T, cfg *config.AppConfig) http.Handler {
	t.Helper()
	s := server.New(cfg, &server.Handlers{
		Instagram: handlers.NewInstagramHandler(nil),
		Analysis:  handlers.NewAnalysisHandler(nil, nil),
		Upload:    handlers.NewUploadHandler(nil, nil, t.TempDir(), 0),
		Health:    handlers.NewHealthHandler(healthyDB{}, cfg.App.Version, cfg.App.Environment),
	})
	return s.GetRouter()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRoutes_HealthAndVersion(t *testing.T) {
	router := newTestServer(t, testConfig())

	rr := serve(router, httptest.NewRequest(http.MethodGet, constants.HealthPath, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","version":"9.9.9"}`, rr.Body.String())

	rr = serve(router, httptest.NewRequest(http.MethodGet, constants.VersionPath, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"9.9.9","environment":"testing"}`, rr.Body.String())
	assert.Equal(t, constants.FrameOptionsDeny, rr.Header().Get(constants.HeaderXFrameOptions))
}

func TestRoutes_NotFoundAndMethodNotAllowed(t *testing.T) {
	router := newTestServer(t, testConfig())

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"`+constants.MsgResourceNotFound+`"}`, rr.Body.String())

	rr = serve(router, httptest.NewRequest(http.MethodGet, constants.AnalyzePath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"error":"`+constants.MsgMethodNotAllowed+`"}`, rr.Body.String())
}

func TestRoutes_ValidationBeforeServices(t *testing.T) {
	router := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, constants.AnalyzePath, strings.NewReader(`{}`))
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	rr := serve(router, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"`+constants.MsgInputTextRequired+`"}`, rr.Body.String())
	assert.Equal(t, constants.CacheControlNoStore, rr.Header().Get(constants.HeaderCacheControl))
}

func TestRoutes_CORS(t *testing.T) {
	router := newTestServer(t, testConfig())

	t.Run("preflight from the allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, constants.AnalyzePath, nil)
		req.Header.Set("Origin", constants.DefaultCORSOrigin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := serve(router, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, constants.DefaultCORSOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "GET, POST, PUT, DELETE", rr.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, constants.VersionPath, nil)
		req.Header.Set("Origin", "https://evil.example")
		rr := serve(router, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("credentials disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.CORS.DisallowCredents = true
		router := newTestServer(t, cfg)

		req := httptest.NewRequest(http.MethodGet, constants.VersionPath, nil)
		req.Header.Set("Origin", constants.DefaultCORSOrigin)
		rr := serve(router, req)

		assert.Equal(t, constants.DefaultCORSOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestRoutes_RateLimit(t *testing.T) {
	post := func(router http.Handler, path string) int {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
		req.RemoteAddr = "198.51.100.4:4000"
		return serve(router, req).Code
	}

	t.Run("limited per category", func(t *testing.T) {
		router := newTestServer(t, testConfig())

		assert.Equal(t, http.StatusBadRequest, post(router, constants.AnalyzePath))
		assert.Equal(t, http.StatusBadRequest, post(router, constants.PredictPatientsSentimentsPath))
		assert.Equal(t, http.StatusTooManyRequests, post(router, constants.AnalyzePath))

		// The automation endpoints have their own budget.
		assert.Equal(t, http.StatusBadRequest, post(router, constants.InstagramLoginPath))
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimit.Disabled = true
		router := newTestServer(t, cfg)

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusBadRequest, post(router, constants.AnalyzePath))
		}
	})
}

func TestRoutes_RateLimitClientAddress(t *testing.T) {
	post := func(router http.Handler, forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, constants.AnalyzePath, strings.NewReader(`{}`))
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
		req.Header.Set("X-Forwarded-For", forwardedFor)
		req.RemoteAddr = "10.0.0.10:4000"
		return serve(router, req).Code
	}

	t.Run("forwarding headers ignored by default", func(t *testing.T) {
		router := newTestServer(t, testConfig())

		assert.Equal(t, http.StatusBadRequest, post(router, "203.0.113.1"))
		assert.Equal(t, http.StatusBadRequest, post(router, "203.0.113.2"))
		assert.Equal(t, http.StatusTooManyRequests, post(router, "203.0.113.3"))
	})

	t.Run("behind a trusted proxy", func(t *testing.T) {
		cfg := testConfig()
		cfg.Server.TrustProxy = true
		router := newTestServer(t, cfg)

		assert.Equal(t, http.StatusBadRequest, post(router, "203.0.113.1"))
		assert.Equal(t, http.StatusBadRequest, post(router, "203.0.113.1"))
		assert.Equal(t, http.StatusTooManyRequests, post(router, "203.0.113.1"))
		assert.Equal(t, http.StatusBadRequest, post(router, "203.0.113.2"))
	})
}

// slowPatients takes longer than the server's write timeout, like a long
// batch of sequential provider round trips.
type slowPatients struct{ delay time.Duration }

func (p slowPatients) ProcessRows(ctx context.Context, rows []models.PatientRow) []models.RowResult {
	time.Sleep(p.delay)
	results := make([]models.RowResult, len(rows))
	for i := range rows {
		results[i] = models.RowResult{Name: "row", Sentiment: "positive"}
	}
	return results
}

func TestRoutes_PatientBatchOutlivesWriteTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Disabled = true
	cfg.Logging.NoRequestLog = false

	s := server.New(cfg, &server.Handlers{
		Instagram: handlers.NewInstagramHandler(nil),
		Analysis:  handlers.NewAnalysisHandler(nil, slowPatients{delay: 400 * time.Millisecond}),
		Upload:    handlers.NewUploadHandler(nil, nil, t.TempDir(), 0),
		Health:    handlers.NewHealthHandler(healthyDB{}, cfg.App.Version, cfg.App.Environment),
	})
	ts := httptest.NewUnstartedServer(s.GetRouter())
	ts.Config.WriteTimeout = 200 * time.Millisecond
	ts.Start()
	defer ts.Close()

	body := `{"csvData":[{"Name":"Ada","Sentiment":"calm"},{"Name":"Bo","Sentiment":"tired"}]}`
	resp, err := ts.Client().Post(ts.URL+constants.PredictPatientsSentimentsPath, constants.ContentTypeJSON, strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var results []models.RowResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	assert.Len(t, results, 2)
}

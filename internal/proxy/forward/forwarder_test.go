package forward_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectx/internal/proxy/adapters/cache"
	proxyhttp "connectx/internal/proxy/app/http"
	"connectx/internal/proxy/config"
	"connectx/internal/proxy/forward"
	cachePorts "connectx/internal/proxy/ports/cache"
)

// backendRecorder считает запросы, дошедшие до бэкенда.
type backendRecorder struct {
	getCalls  atomic.Int64
	postCalls atomic.Int64
}

func newProxyApp(t *testing.T, backendURL string, respCache cachePorts.Cache) *fiber.App {
	t.Helper()

	cfg := &config.BackendConfig{
		URL:            backendURL,
		APIKey:         "proxy-api-key",
		RequestTimeout: 5 * time.Second,
	}

	app := fiber.New()
	proxyhttp.SetupRouter(app, forward.NewForwarder(cfg, respCache))
	return app
}

func newRedisResponseCache(t *testing.T) (cachePorts.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	host, portStr, _ := strings.Cut(mr.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	respCache, err := cache.NewRedisCache(context.Background(), &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
		PoolSize:       10,
		DefaultTTL:     30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = respCache.Close() })

	return respCache, mr
}

func TestForwarder_ForwardsRequestToBackend(t *testing.T) {
	var gotPath, gotAPIKey, gotAuth, gotQuery string

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAPIKey = r.Header.Get("X-API-KEY")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		_, _ = w.Write([]byte(`{"count":0,"results":[]}`))
	}))
	defer backend.Close()

	app := newProxyApp(t, backend.URL, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/proxy/products/?page=1", nil)
	req.Header.Set("Authorization", "Bearer user-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/products/", gotPath)
	assert.Equal(t, "page=1", gotQuery)
	assert.Equal(t, "proxy-api-key", gotAPIKey, "proxy must inject its API key")
	assert.Equal(t, "Bearer user-token", gotAuth, "user credentials pass through unchanged")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":0,"results":[]}`, string(body))
}

func TestForwarder_PreservesBackendStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token expired"}`))
	}))
	defer backend.Close()

	app := newProxyApp(t, backend.URL, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/proxy/orders/", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "401 must reach the client for the refresh protocol to work")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"detail":"token expired"}`, string(body))
}

func TestForwarder_CachesGETResponses(t *testing.T) {
	recorder := &backendRecorder{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder.getCalls.Add(1)
		w.Header().Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		_, _ = w.Write([]byte(`{"id":"p1"}`))
	}))
	defer backend.Close()

	respCache, _ := newRedisResponseCache(t)
	app := newProxyApp(t, backend.URL, respCache)

	for range 3 {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/proxy/products/p1/", nil))
		require.NoError(t, err)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"id":"p1"}`, string(body))
	}

	assert.Equal(t, int64(1), recorder.getCalls.Load(), "repeated GETs must be served from cache")
}

func TestForwarder_CacheExpires(t *testing.T) {
	recorder := &backendRecorder{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		recorder.getCalls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer backend.Close()

	respCache, mr := newRedisResponseCache(t)
	app := newProxyApp(t, backend.URL, respCache)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/proxy/categories/", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	mr.FastForward(time.Minute)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/proxy/categories/", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, int64(2), recorder.getCalls.Load(), "expired cache entry must trigger a backend call")
}

func TestForwarder_ErrorResponsesAreNotCached(t *testing.T) {
	recorder := &backendRecorder{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		recorder.getCalls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"not found"}`))
	}))
	defer backend.Close()

	respCache, _ := newRedisResponseCache(t)
	app := newProxyApp(t, backend.URL, respCache)

	for range 2 {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/proxy/products/missing/", nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	assert.Equal(t, int64(2), recorder.getCalls.Load())
}

func TestForwarder_MutationInvalidatesCachedResource(t *testing.T) {
	recorder := &backendRecorder{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			recorder.getCalls.Add(1)
		} else {
			recorder.postCalls.Add(1)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer backend.Close()

	respCache, _ := newRedisResponseCache(t)
	app := newProxyApp(t, backend.URL, respCache)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/proxy/products/", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/api/proxy/products/", strings.NewReader(`{"name":"x"}`)))
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/proxy/products/", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, int64(2), recorder.getCalls.Load(), "POST must purge cached GETs of the same resource")
	assert.Equal(t, int64(1), recorder.postCalls.Load())
}

func TestForwarder_BackendDownReturns502(t *testing.T) {
	app := newProxyApp(t, "http://127.0.0.1:1", nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/proxy/orders/", strings.NewReader(`{}`)), fiber.TestConfig{
		Timeout: 10 * time.Second,
	})
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"backend unreachable"}`, string(body))
}

func TestRouter_Healthz(t *testing.T) {
	app := newProxyApp(t, "http://127.0.0.1:1", nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestRouter_UnknownRoute(t *testing.T) {
	app := newProxyApp(t, "http://127.0.0.1:1", nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/not-a-route", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_RequestIDEcho(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer backend.Close()

	app := newProxyApp(t, backend.URL, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/proxy/products/", nil)
	req.Header.Set("X-Request-ID", "req-42")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "req-42", resp.Header.Get("X-Request-ID"))
}

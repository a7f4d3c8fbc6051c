// Package forward реализует пересылку запросов /api/proxy/ к бэкенду
// ConnectX с внедрением API ключа и кэшированием GET ответов.
package forward

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"connectx/internal/proxy/app/http/middleware"
	"connectx/internal/proxy/config"
	cachePorts "connectx/internal/proxy/ports/cache"
	"connectx/internal/proxy/resilience"
	"connectx/pkg/logger"
)

// Константы для логирования.
const (
	LogForwarding = "forwarding request to backend"
	LogCacheHit   = "serving response from cache"

	ErrorBackendUnreachable = "backend unreachable"
	ErrorBackendUnavailable = "backend temporarily unavailable"
)

// cacheKeyPrefix - префикс всех ключей кэша ответов.
const cacheKeyPrefix = "resp:"

// Заголовки, пересылаемые бэкенду без изменений.
var passthroughHeaders = []string{
	fiber.HeaderContentType,
	fiber.HeaderAccept,
	fiber.HeaderAuthorization,
}

// cachedResponse - формат записи кэшированного ответа.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// Forwarder пересылает запросы к бэкенду ConnectX.
type Forwarder struct {
	cfg        *config.BackendConfig
	httpClient *http.Client
	cache      cachePorts.Cache
	resilience *resilience.BackendResilience
}

// NewForwarder создает новый Forwarder. Кэш может быть nil: тогда все
// GET запросы уходят к бэкенду напрямую.
func NewForwarder(cfg *config.BackendConfig, respCache cachePorts.Cache) *Forwarder {
	return &Forwarder{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		cache:      respCache,
		resilience: resilience.NewBackendResilience("connectx-backend"),
	}
}

// Forward обрабатывает запрос /api/proxy/*: пересылает его бэкенду,
// внедряя X-API-KEY, и возвращает код состояния и тело ответа как есть.
func (f *Forwarder) Forward(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	path := ctx.Params("*")
	method := ctx.Method()
	query := string(ctx.Request().URI().QueryString())

	log := logger.Log(requestCtx).With(
		zap.String("method", method),
		zap.String("backend_path", path),
	)

	key := cacheKey(path, query)
	cacheable := method == http.MethodGet && f.cache != nil

	if cacheable {
		if cached, ok := f.lookupCache(ctx, key); ok {
			log.Debug(requestCtx, LogCacheHit)
			ctx.Set(fiber.HeaderContentType, cached.ContentType)
			return ctx.Status(cached.Status).SendString(cached.Body)
		}
	}

	backendURL := strings.TrimRight(f.cfg.URL, "/") + "/" + path
	if query != "" {
		backendURL += "?" + query
	}

	log.Debug(requestCtx, LogForwarding, zap.String("url", backendURL))

	var (
		status      int
		contentType string
		respBody    []byte
	)

	idempotent := method == http.MethodGet || method == http.MethodHead
	err := f.resilience.Execute(requestCtx, idempotent, func() error {
		var reader io.Reader
		if body := ctx.Body(); len(body) > 0 {
			reader = bytes.NewReader(body)
		}

		req, reqErr := http.NewRequestWithContext(requestCtx, method, backendURL, reader)
		if reqErr != nil {
			return fmt.Errorf("failed to build backend request: %w", reqErr)
		}

		for _, header := range passthroughHeaders {
			if value := ctx.Get(header); value != "" {
				req.Header.Set(header, value)
			}
		}
		req.Header.Set("X-API-KEY", f.cfg.APIKey)

		resp, doErr := f.httpClient.Do(req)
		if doErr != nil {
			return fmt.Errorf("backend request failed: %w", doErr)
		}
		defer func() { _ = resp.Body.Close() }()

		respBody, doErr = io.ReadAll(resp.Body)
		if doErr != nil {
			return fmt.Errorf("failed to read backend response: %w", doErr)
		}

		status = resp.StatusCode
		contentType = resp.Header.Get(fiber.HeaderContentType)
		return nil
	})

	if errors.Is(err, resilience.ErrCircuitOpen) {
		return sendErrorResponse(ctx, fiber.StatusServiceUnavailable, ErrorBackendUnavailable)
	}
	if err != nil {
		log.Error(requestCtx, ErrorBackendUnreachable, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusBadGateway, ErrorBackendUnreachable)
	}

	if cacheable && status == http.StatusOK {
		f.storeCache(ctx, key, cachedResponse{
			Status:      status,
			ContentType: contentType,
			Body:        string(respBody),
		})
	}

	// Мутация инвалидирует закэшированные ответы того же ресурса.
	if method != http.MethodGet && status >= 200 && status < 300 && f.cache != nil {
		if err := f.cache.DeleteByPrefix(requestCtx, cacheKeyPrefix+firstSegment(path)); err != nil {
			log.Warn(requestCtx, "failed to invalidate response cache", zap.Error(err))
		}
	}

	if contentType != "" {
		ctx.Set(fiber.HeaderContentType, contentType)
	}
	return ctx.Status(status).Send(respBody)
}

// lookupCache читает и разбирает кэшированный ответ.
func (f *Forwarder) lookupCache(ctx fiber.Ctx, key string) (cachedResponse, bool) {
	requestCtx := middleware.RequestContext(ctx)

	raw, err := f.cache.Get(requestCtx, key)
	if err != nil || raw == "" {
		return cachedResponse{}, false
	}

	var cached cachedResponse
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return cachedResponse{}, false
	}
	return cached, true
}

// storeCache сохраняет ответ в кэше. Неудача записи не влияет на ответ клиенту.
func (f *Forwarder) storeCache(ctx fiber.Ctx, key string, resp cachedResponse) {
	requestCtx := middleware.RequestContext(ctx)

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := f.cache.Set(requestCtx, key, string(data), 0); err != nil {
		logger.Log(requestCtx).Warn(requestCtx, "failed to store response in cache", zap.Error(err))
	}
}

// sendErrorResponse отправляет единообразный JSON ответ с ошибкой.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// cacheKey строит ключ кэша из пути и строки запроса.
func cacheKey(path, query string) string {
	if query == "" {
		return cacheKeyPrefix + path
	}
	return cacheKeyPrefix + path + "?" + query
}

// firstSegment возвращает первый сегмент пути - префикс ресурса.
func firstSegment(path string) string {
	path = strings.TrimLeft(path, "/")
	if idx := strings.Index(path, "/"); idx >= 0 {
		return path[:idx+1]
	}
	return path
}

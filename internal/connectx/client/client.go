// Package client реализует единую точку входа для всех запросов к ConnectX
// API: построение заголовков, кэширование GET ответов, протокол повтора
// запроса после обновления токена и нормализацию ошибок.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"connectx/internal/connectx/config"
	cachePorts "connectx/internal/connectx/ports/cache"
	sessionPorts "connectx/internal/connectx/ports/session"
	"connectx/pkg/logger"
)

// Константы для логирования.
const (
	LogCacheHit        = "api client: cache hit"
	LogRequestStarted  = "api client: request started"
	LogTokenRefreshing = "api client: access token rejected, refreshing" // nolint:gosec
	LogRetryAfterAuth  = "api client: retrying request with new token"

	ErrorRequestFailed  = "request failed"
	ErrorEncodeBody     = "failed to encode request body"
	ErrorReadResponse   = "failed to read response body"
	ErrorDecodeResponse = "failed to decode response"
)

// Заголовки запроса.
const (
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	headerAPIKey      = "X-API-KEY"
	headerAuth        = "Authorization"

	contentTypeJSON = "application/json"
	bearerPrefix    = "Bearer "
)

// requestOptions содержит настройки отдельного запроса.
type requestOptions struct {
	includeAuth bool
	useCache    bool
	headers     map[string]string
}

// Option настраивает отдельный запрос.
type Option func(*requestOptions)

// WithoutAuth отключает заголовок Authorization для запроса.
// Используется для входа и обновления токена.
func WithoutAuth() Option {
	return func(o *requestOptions) { o.includeAuth = false }
}

// WithoutCache отключает чтение и запись кэша для запроса.
func WithoutCache() Option {
	return func(o *requestOptions) { o.useCache = false }
}

// WithHeader добавляет произвольный заголовок к запросу.
func WithHeader(key, value string) Option {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		o.headers[key] = value
	}
}

// Client выполняет HTTP запросы к ConnectX API через прокси.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	cache      cachePorts.ResponseCache
	tokens     sessionPorts.TokenSource
}

// New создает новый API клиент. Отсутствие базового адреса или API ключа
// является фатальной ошибкой конфигурации и обнаруживается здесь,
// до выполнения первого запроса.
func New(cfg *config.Config, responseCache cachePorts.ResponseCache) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("api client configuration: %w", err)
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		cache:      responseCache,
	}, nil
}

// SetTokenSource привязывает источник токенов к клиенту. Хранилище
// учетных данных само пользуется клиентом для входа и обновления,
// поэтому связь устанавливается после создания обеих сторон.
func (c *Client) SetTokenSource(tokens sessionPorts.TokenSource) {
	c.tokens = tokens
}

// Request выполняет запрос к бэкенду и возвращает тело успешного ответа.
// GET запросы проходят через кэш; ответ 401 при наличии токена приводит
// ровно к одному обновлению токена и одному повтору запроса.
func (c *Client) Request(ctx context.Context, method, endpoint string, query url.Values, body any, opts ...Option) (json.RawMessage, error) {
	options := requestOptions{includeAuth: true, useCache: true}
	for _, opt := range opts {
		opt(&options)
	}

	path := normalizeEndpoint(endpoint)
	log := logger.Log(ctx).With(
		zap.String("method", method),
		zap.String("endpoint", path),
	)

	cacheable := method == http.MethodGet && options.useCache && c.cache != nil
	key := cacheKey(path, query)

	if cacheable {
		if data, ok := c.cache.Get(key); ok {
			log.Debug(ctx, LogCacheHit)
			return data, nil
		}
	}

	encodedBody, err := encodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorEncodeBody, err)
	}

	token := ""
	if options.includeAuth && c.tokens != nil {
		token, err = c.tokens.EnsureValidToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to obtain access token: %w", err)
		}
	}

	log.Debug(ctx, LogRequestStarted)

	status, data, err := c.do(ctx, method, path, query, token, encodedBody, options.headers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorRequestFailed, err)
	}

	// Протокол повтора после 401: ровно одно обновление и один повтор,
	// и только если запрос выполнялся с токеном. Повторный 401 после
	// повтора уходит вызывающему как обычная ошибка.
	if status == http.StatusUnauthorized && options.includeAuth && token != "" {
		log.Info(ctx, LogTokenRefreshing)

		newToken, refreshErr := c.tokens.RefreshAccessToken(ctx)
		if refreshErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrSessionExpired, refreshErr)
		}

		log.Debug(ctx, LogRetryAfterAuth)
		status, data, err = c.do(ctx, method, path, query, newToken, encodedBody, options.headers)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrorRequestFailed, err)
		}
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, newAPIError(status, data)
	}

	if cacheable {
		c.cache.Set(key, data)
	}

	// Успешная мутация инвалидирует закэшированные списки того же ресурса,
	// иначе интерфейс показывал бы устаревшие данные до истечения TTL.
	if method != http.MethodGet && c.cache != nil {
		c.cache.InvalidatePrefix(resourcePrefix(path))
	}

	return data, nil
}

// Do выполняет запрос и декодирует тело успешного ответа в T.
func Do[T any](ctx context.Context, c *Client, method, endpoint string, query url.Values, body any, opts ...Option) (T, error) {
	var out T

	raw, err := c.Request(ctx, method, endpoint, query, body, opts...)
	if err != nil {
		return out, err
	}

	if len(raw) == 0 {
		return out, nil
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%s: %w", ErrorDecodeResponse, err)
	}

	return out, nil
}

// do выполняет один HTTP запрос без повторов и возвращает код состояния
// и прочитанное тело ответа.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body []byte, headers map[string]string) (int, []byte, error) {
	requestURL := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerAccept, contentTypeJSON)
	req.Header.Set(headerAPIKey, c.cfg.APIKey)
	if token != "" {
		req.Header.Set(headerAuth, bearerPrefix+token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("network error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", ErrorReadResponse, err)
	}

	return resp.StatusCode, data, nil
}

// encodeBody сериализует тело запроса в JSON. Тело типа []byte
// передается как есть.
func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	if raw, ok := body.([]byte); ok {
		return raw, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return data, nil
}

// normalizeEndpoint убирает ведущий слэш и добавляет завершающий.
func normalizeEndpoint(endpoint string) string {
	path := strings.TrimLeft(endpoint, "/")
	if path != "" && !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}

// cacheKey строит детерминированный ключ кэша из пути и параметров.
// url.Values.Encode сортирует ключи, поэтому порядок параметров не влияет.
func cacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// resourcePrefix возвращает первый сегмент пути - префикс ресурса,
// по которому инвалидируются записи кэша после мутаций.
func resourcePrefix(path string) string {
	if idx := strings.Index(path, "/"); idx >= 0 {
		return path[:idx+1]
	}
	return path
}

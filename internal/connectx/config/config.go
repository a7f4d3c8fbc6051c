// Package config содержит конфигурацию клиента ConnectX API.
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	pkgconfig "connectx/pkg/config"
	"connectx/pkg/logger"
)

// Ошибки конфигурации. Проверяются синхронно при создании клиента,
// до выполнения первого запроса.
var (
	ErrAPIKeyNotConfigured  = errors.New("api key is not configured")
	ErrBaseURLNotConfigured = errors.New("api base url is not configured")
)

// Config представляет конфигурацию клиента ConnectX API.
type Config struct {
	// BaseURL - адрес прокси, через который проходят все запросы к бэкенду.
	BaseURL string `yaml:"base_url" env:"CONNECTX_API_URL" env-default:"http://localhost:8080/api/proxy"`
	// APIKey - статический ключ, передаваемый в заголовке X-API-KEY.
	APIKey string `yaml:"api_key" env:"CONNECTX_API_KEY" env-default:""`

	RequestTimeout time.Duration `yaml:"request_timeout" env:"CONNECTX_REQUEST_TIMEOUT" env-default:"30s"`
	// CacheTTL - время жизни закэшированных GET ответов.
	CacheTTL time.Duration `yaml:"cache_ttl" env:"CONNECTX_CACHE_TTL" env-default:"5m"`
	// RefreshBuffer - запас времени до истечения access токена,
	// при котором токен обновляется заранее.
	RefreshBuffer time.Duration `yaml:"refresh_buffer" env:"CONNECTX_REFRESH_BUFFER" env-default:"30s"`
}

// Load загружает конфигурацию клиента из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, "connectx-client")
	if err != nil {
		return nil, fmt.Errorf("failed to load client configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		logger.Log(ctx).Error(ctx, "invalid client configuration", zap.Error(err))
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля конфигурации.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrBaseURLNotConfigured
	}
	if c.APIKey == "" {
		return ErrAPIKeyNotConfigured
	}
	return nil
}

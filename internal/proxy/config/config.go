// Package config содержит конфигурацию прокси ConnectX API.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"connectx/pkg/logger"
)

// Константы сообщений конфигурации.
const (
	LogLoadingConfig    = "loading proxy configuration"
	LogConfigLoaded     = "proxy configuration loaded successfully"
	ErrFailedLoadConfig = "failed to load proxy configuration"
)

// Ошибки конфигурации, фатальные при запуске.
var (
	ErrBackendURLNotConfigured = errors.New("backend url is not configured")
	ErrAPIKeyNotConfigured     = errors.New("backend api key is not configured")
)

// Config представляет полную конфигурацию прокси.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Backend  BackendConfig  `yaml:"backend"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию прокси из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogLoadingConfig)

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("backend_url", cfg.Backend.URL),
		zap.String("redis_address", cfg.Redis.GetAddressString()),
		zap.Duration("cache_ttl", cfg.Redis.DefaultTTL),
		zap.String("log_level", cfg.Logging.Level))

	return &cfg, nil
}

// Validate проверяет обязательные поля конфигурации. Отсутствие адреса
// бэкенда или ключа API обнаруживается до старта сервера.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return ErrBackendURLNotConfigured
	}
	if c.Backend.APIKey == "" {
		return ErrAPIKeyNotConfigured
	}
	return nil
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}

package config

import "time"

// BackendConfig представляет конфигурацию подключения к бэкенду ConnectX.
type BackendConfig struct {
	// URL - базовый адрес REST API бэкенда.
	URL string `yaml:"url" env:"CONNECTX_BACKEND_URL" env-default:""`
	// APIKey - статический ключ, добавляемый прокси в заголовок X-API-KEY
	// каждого пересылаемого запроса.
	APIKey string `yaml:"api_key" env:"CONNECTX_API_KEY" env-default:""`

	RequestTimeout time.Duration `yaml:"request_timeout" env:"PROXY_BACKEND_REQUEST_TIMEOUT" env-default:"30s"`
}

package config

import (
	"strconv"
	"time"
)

// RedisConfig представляет конфигурацию Redis для кэша ответов прокси.
type RedisConfig struct {
	Host           string        `yaml:"host" env:"PROXY_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"PROXY_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"PROXY_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"PROXY_REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"PROXY_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"PROXY_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"PROXY_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize       int           `yaml:"pool_size" env:"PROXY_REDIS_POOL_SIZE" env-default:"10"`
	// DefaultTTL - время жизни закэшированного GET ответа. Кэш прокси
	// короткий: он гасит всплески одинаковых запросов, а не заменяет
	// клиентский кэш.
	DefaultTTL time.Duration `yaml:"default_ttl" env:"PROXY_CACHE_TTL" env-default:"30s"`
}

// GetAddressString возвращает адрес Redis строкой.
func (c *RedisConfig) GetAddressString() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

package config

import (
	"strconv"
	"time"
)

// RedisConfig представляет конфигурацию Redis для хранилища сессий.
type RedisConfig struct {
	Host           string        `yaml:"host" env:"CONNECTX_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"CONNECTX_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"CONNECTX_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"CONNECTX_REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"CONNECTX_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"CONNECTX_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"CONNECTX_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize       int           `yaml:"pool_size" env:"CONNECTX_REDIS_POOL_SIZE" env-default:"10"`
}

// GetAddressString возвращает адрес Redis строкой.
func (c *RedisConfig) GetAddressString() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

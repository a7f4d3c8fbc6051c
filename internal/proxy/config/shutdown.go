package config

import "time"

// ShutdownConfig представляет конфигурацию корректного завершения работы.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"PROXY_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout возвращает таймаут завершения работы в виде Duration.
func (c *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

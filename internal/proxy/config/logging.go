package config

// LoggingConfig представляет конфигурацию логирования прокси.
type LoggingConfig struct {
	Level string `yaml:"level" env:"PROXY_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"PROXY_LOGGER_MODE" env-default:"production"`
}

package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectx/internal/connectx/config"
	"connectx/pkg/logger"
)

func TestLoad(t *testing.T) {
	require.NoError(t, logger.InitGlobalLogger(logger.Development, "info"))
	ctx := context.Background()

	t.Run("loads config from environment", func(t *testing.T) {
		t.Setenv("CONNECTX_API_URL", "https://proxy.connectx.example/api/proxy")
		t.Setenv("CONNECTX_API_KEY", "key-from-env")
		t.Setenv("CONNECTX_REQUEST_TIMEOUT", "10s")
		t.Setenv("CONNECTX_CACHE_TTL", "2m")
		t.Setenv("CONNECTX_REFRESH_BUFFER", "45s")

		cfg, err := config.Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, "https://proxy.connectx.example/api/proxy", cfg.BaseURL)
		assert.Equal(t, "key-from-env", cfg.APIKey)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
		assert.Equal(t, 45*time.Second, cfg.RefreshBuffer)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("CONNECTX_API_KEY", "key-from-env")

		cfg, err := config.Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8080/api/proxy", cfg.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	})

	t.Run("missing api key is rejected", func(t *testing.T) {
		t.Setenv("CONNECTX_API_KEY", "")

		_, err := config.Load(ctx)
		assert.ErrorIs(t, err, config.ErrAPIKeyNotConfigured)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr error
	}{
		{
			name: "valid",
			cfg:  config.Config{BaseURL: "http://localhost:8080/api/proxy", APIKey: "k"},
		},
		{
			name:    "missing base url",
			cfg:     config.Config{APIKey: "k"},
			wantErr: config.ErrBaseURLNotConfigured,
		},
		{
			name:    "missing api key",
			cfg:     config.Config{BaseURL: "http://localhost:8080/api/proxy"},
			wantErr: config.ErrAPIKeyNotConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

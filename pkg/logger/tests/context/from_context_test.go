package context_test

import (
	"context"
	"testing"

	"connectx/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("returns logger stored in context", func(t *testing.T) {
		stored, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), stored)

		result, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, stored, result)
	})

	t.Run("returns error when logger is missing", func(t *testing.T) {
		result, err := logger.FromContext(context.Background())

		assert.Nil(t, result)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestInitGlobalLogger(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	t.Run("initializes global logger", func(t *testing.T) {
		require.NoError(t, logger.InitGlobalLogger(logger.Development, "info"))

		result := logger.Log(context.Background())
		assert.NotNil(t, result)
	})

	t.Run("repeated init keeps the existing logger", func(t *testing.T) {
		first := logger.Log(context.Background())

		require.NoError(t, logger.InitGlobalLogger(logger.Production, "error"))

		assert.Same(t, first, logger.Log(context.Background()))
	})

	t.Run("invalid level is rejected", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		err := logger.InitGlobalLogger(logger.Development, "not-a-level")
		assert.ErrorIs(t, err, logger.ErrInitGlobalLogger)
	})
}

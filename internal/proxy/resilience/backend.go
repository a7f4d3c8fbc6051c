package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"connectx/pkg/logger"
)

// Константы для логирования.
const (
	LogRetryAttempt = "retrying backend request after network error"
)

// ErrContextCanceled возвращается, когда контекст отменен во время
// ожидания перед повторной попыткой.
var ErrContextCanceled = errors.New("context was canceled during retry")

// RetryConfig содержит настройки повтора сетевых ошибок.
type RetryConfig struct {
	// MaxAttempts - максимальное количество попыток, включая первую.
	MaxAttempts int
	// InitialBackoff - начальная задержка между попытками.
	InitialBackoff time.Duration
	// MaxBackoff - максимальная задержка между попытками.
	MaxBackoff time.Duration
	// BackoffFactor - множитель экспоненциального отступа.
	BackoffFactor float64
}

// DefaultRetryConfig возвращает настройки повтора по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
	}
}

// BackendResilience объединяет Circuit Breaker и повтор сетевых ошибок
// для одного бэкенда. Повторяются только сетевые отказы идемпотентных
// запросов: ответы бэкенда, включая 5xx, не повторяются никогда.
type BackendResilience struct {
	breaker *CircuitBreaker
	retry   RetryConfig
}

// NewBackendResilience создает механизмы отказоустойчивости для бэкенда.
func NewBackendResilience(name string) *BackendResilience {
	return &BackendResilience{
		breaker: NewCircuitBreaker(name, DefaultCircuitBreakerConfig()),
		retry:   DefaultRetryConfig(),
	}
}

// BreakerState возвращает текущее состояние Circuit Breaker.
func (r *BackendResilience) BreakerState() CircuitState {
	return r.breaker.GetState()
}

// Execute выполняет обращение к бэкенду. Для идемпотентных запросов
// сетевые ошибки повторяются с экспоненциальным отступом.
func (r *BackendResilience) Execute(ctx context.Context, idempotent bool, fn func() error) error {
	return r.breaker.Execute(ctx, func() error {
		if !idempotent {
			return fn()
		}
		return r.executeWithRetry(ctx, fn)
	})
}

// executeWithRetry повторяет fn при сетевых ошибках.
func (r *BackendResilience) executeWithRetry(ctx context.Context, fn func() error) error {
	log := logger.Log(ctx)
	backoff := r.retry.InitialBackoff

	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil || !isRetryableNetworkError(err) || attempt >= r.retry.MaxAttempts {
			return err
		}

		log.Info(ctx, LogRetryAttempt,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		}

		backoff = time.Duration(float64(backoff) * r.retry.BackoffFactor)
		if backoff > r.retry.MaxBackoff {
			backoff = r.retry.MaxBackoff
		}
	}
}

// isRetryableNetworkError отличает сетевые отказы от ошибок уровня
// приложения и отмены контекста.
func isRetryableNetworkError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

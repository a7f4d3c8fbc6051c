// Package resilience содержит механизмы отказоустойчивости для обращений
// прокси к бэкенду: Circuit Breaker и повтор сетевых ошибок.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"connectx/pkg/logger"
)

// CircuitState представляет состояние Circuit Breaker.
type CircuitState int

// Состояния Circuit Breaker.
const (
	// StateClosed - нормальное состояние, запросы проходят.
	StateClosed CircuitState = iota
	// StateOpen - состояние отказа, запросы блокируются.
	StateOpen
	// StateHalfOpen - промежуточное состояние, пробные запросы.
	StateHalfOpen
)

// Константы для логирования.
const (
	LogCircuitTrip   = "circuit breaker tripped"
	LogCircuitReset  = "circuit breaker reset"
	LogCircuitProbe  = "circuit breaker allowing probe request"
	LogCircuitReject = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, когда Circuit Breaker блокирует запросы.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig содержит настройки Circuit Breaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold - количество подряд идущих ошибок до размыкания.
	ErrorThreshold int
	// Timeout - пауза перед переходом в полуоткрытое состояние.
	Timeout time.Duration
	// SuccessThreshold - количество успешных пробных запросов до замыкания.
	SuccessThreshold int
}

// DefaultCircuitBreakerConfig возвращает настройки по умолчанию.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker отсекает обращения к бэкенду после серии отказов,
// давая ему восстановиться вместо лавины повторных запросов.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successes       int
	lastStateChange time.Time
}

// NewCircuitBreaker создает новый Circuit Breaker.
func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		name:            name,
		config:          config,
		state:           StateClosed,
		lastStateChange: time.Now(),
	}
}

// Execute выполняет функцию под защитой Circuit Breaker.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.allowRequest(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	cb.recordResult(ctx, err)
	return err
}

// GetState возвращает текущее состояние Circuit Breaker.
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// allowRequest проверяет возможность выполнения запроса, переводя
// разомкнутый выключатель в полуоткрытое состояние по истечении паузы.
func (cb *CircuitBreaker) allowRequest(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	log := logger.Log(ctx).With(zap.String("circuit_breaker", cb.name))

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if time.Since(cb.lastStateChange) > cb.config.Timeout {
			cb.state = StateHalfOpen
			cb.lastStateChange = time.Now()
			cb.successes = 0
			log.Info(ctx, LogCircuitProbe)
			return true
		}
		log.Debug(ctx, LogCircuitReject)
		return false
	case StateHalfOpen:
		return true
	default:
		return false
	}
}

// recordResult записывает исход запроса и переключает состояние.
func (cb *CircuitBreaker) recordResult(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	log := logger.Log(ctx).With(zap.String("circuit_breaker", cb.name))

	if err != nil {
		switch cb.state {
		case StateClosed:
			cb.failures++
			if cb.failures >= cb.config.ErrorThreshold {
				cb.trip(ctx, log)
			}
		case StateHalfOpen:
			cb.trip(ctx, log)
		}
		return
	}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.reset(ctx, log)
		}
	}
}

// trip размыкает выключатель.
func (cb *CircuitBreaker) trip(ctx context.Context, log *logger.Logger) {
	if cb.state != StateOpen {
		log.Warn(ctx, LogCircuitTrip, zap.Int("failures", cb.failures))
		cb.state = StateOpen
		cb.lastStateChange = time.Now()
		cb.successes = 0
	}
}

// reset замыкает выключатель.
func (cb *CircuitBreaker) reset(ctx context.Context, log *logger.Logger) {
	log.Info(ctx, LogCircuitReset)
	cb.state = StateClosed
	cb.lastStateChange = time.Now()
	cb.failures = 0
	cb.successes = 0
}

package resilience_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectx/internal/proxy/resilience"
)

// timeoutError реализует net.Error для имитации сетевого отказа.
type timeoutError struct{}

func (timeoutError) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func TestBackendResilience_RetriesNetworkErrorsForIdempotentRequests(t *testing.T) {
	r := resilience.NewBackendResilience("test-backend")

	var calls int
	err := r.Execute(context.Background(), true, func() error {
		calls++
		if calls < 3 {
			return timeoutError{}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestBackendResilience_GivesUpAfterMaxAttempts(t *testing.T) {
	r := resilience.NewBackendResilience("test-backend")

	var calls int
	err := r.Execute(context.Background(), true, func() error {
		calls++
		return timeoutError{}
	})

	require.Error(t, err)
	var netErr net.Error
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, 3, calls)
}

func TestBackendResilience_NeverRetriesNonIdempotentRequests(t *testing.T) {
	r := resilience.NewBackendResilience("test-backend")

	var calls int
	err := r.Execute(context.Background(), false, func() error {
		calls++
		return timeoutError{}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "a POST must reach the backend at most once")
}

func TestBackendResilience_DoesNotRetryApplicationErrors(t *testing.T) {
	r := resilience.NewBackendResilience("test-backend")

	var calls int
	err := r.Execute(context.Background(), true, func() error {
		calls++
		return assert.AnError
	})

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls, "non-network errors must not be retried")
}

func TestBackendResilience_ContextCancelDuringBackoff(t *testing.T) {
	r := resilience.NewBackendResilience("test-backend")

	ctx, cancel := context.WithCancel(context.Background())

	var calls int
	done := make(chan error, 1)
	go func() {
		done <- r.Execute(ctx, true, func() error {
			calls++
			return timeoutError{}
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, resilience.ErrContextCanceled)
	case <-time.After(2 * time.Second):
		t.Fatal("execute did not return after context cancel")
	}
}

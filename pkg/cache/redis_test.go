package cache

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/topodiagram/pkg/errors"
)

func TestNewRedisCacheInvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "http://localhost:6379")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewRedisCache() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })

	// Port 1 is reserved and refuses connections.
	_, err := NewRedisCache(context.Background(), "redis://127.0.0.1:1/0")
	if !errors.Is(err, errors.ErrCodeBackendUnavailable) {
		t.Errorf("NewRedisCache() error = %v, want %s", err, errors.ErrCodeBackendUnavailable)
	}
}

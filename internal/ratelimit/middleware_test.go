package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memStore struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}

func (m *memStore) GetAndDelete(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

func (m *memStore) IncrWithWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[key]++
	return m.counts[key], nil
}

func passthroughHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
}

func TestMiddleware_AllowsWithinLimit(t *testing.T) {
	store := &memStore{}
	handler := Middleware(store, 2)(passthroughHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer token-a")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestMiddleware_RejectsOverLimit(t *testing.T) {
	store := &memStore{}
	handler := Middleware(store, 2)(passthroughHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer token-b")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token-b")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestMiddleware_KeysByCredentialNotConnection(t *testing.T) {
	store := &memStore{}
	handler := Middleware(store, 1)(passthroughHandler())

	reqA := httptest.NewRequest(http.MethodGet, "/", nil)
	reqA.Header.Set("Authorization", "Bearer token-c")
	handler.ServeHTTP(httptest.NewRecorder(), reqA)

	// A distinct credential gets its own window even though both requests
	// share the same test transport/connection.
	reqB := httptest.NewRequest(http.MethodGet, "/", nil)
	reqB.Header.Set("Authorization", "Bearer token-d")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, reqB)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_FailsOpenOnStoreError(t *testing.T) {
	store := &memStore{err: assert.AnError}
	handler := Middleware(store, 1)(passthroughHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_AnonymousRequestsShareOneBucket(t *testing.T) {
	store := &memStore{}
	handler := Middleware(store, 1)(passthroughHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if i == 1 {
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		}
	}
}

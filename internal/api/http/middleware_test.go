package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"equipment-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIPRateLimiter_Allow(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newIPRateLimiter(1, 2)
	l.now = func() time.Time { return clock }

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"), "burst exhausted")
	assert.True(t, l.allow("10.0.0.2"), "buckets are per client")

	clock = clock.Add(time.Second)
	assert.True(t, l.allow("10.0.0.1"), "one token refilled")

	clock = clock.Add(5 * time.Minute)
	l.allow("10.0.0.3")
	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.visitors, 1, "idle visitors swept")
}

func TestRoutes_RateLimited(t *testing.T) {
	eq := new(MockEquipmentService)
	eq.On("ListEquipment", mock.Anything).Return(fleet(), nil)
	h := newTestHandler(eq, new(MockRentalEntryService))
	h.server = config.ServerConfig{RateLimitPerSecond: 0.001, RateLimitBurst: 1}
	routes := h.Routes()

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/equipment", nil)
		req.RemoteAddr = "192.0.2.7:5050"
		routes.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRecoverPanic(t *testing.T) {
	handler := recoverPanic(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
	assert.Equal(t, "boom", decodeError(t, rec))
}

func TestRequestID(t *testing.T) {
	h := newTestHandler(new(MockEquipmentService), new(MockRentalEntryService))
	routes := h.Routes()

	t.Run("Echoes caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
	})

	t.Run("Generates one", func(t *testing.T) {
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.NotEmpty(t, rec.Header().Get(requestIDHeader))
		assert.Len(t, rec.Header().Get(requestIDHeader), 36)
	})
}

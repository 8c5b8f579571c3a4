package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, 60)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		allowed, _, _ := rl.Allow("1.2.3.4")
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, remaining, _ := rl.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	// A different client has its own window.
	allowed, _, _ = rl.Allow("5.6.7.8")
	assert.True(t, allowed)
}

func TestRateLimit_Middleware(t *testing.T) {
	handler := RateLimit(2, 60)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/health", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest("GET", "/health", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "10.0.0.1:5555", nil, "10.0.0.1"},
		{"x-forwarded-for", "10.0.0.1:5555", map[string]string{"X-Forwarded-For": "1.1.1.1, 2.2.2.2"}, "1.1.1.1"},
		{"x-real-ip", "10.0.0.1:5555", map[string]string{"X-Real-IP": "3.3.3.3"}, "3.3.3.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}

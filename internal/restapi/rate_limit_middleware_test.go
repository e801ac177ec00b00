package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(t *testing.T, handler http.Handler, remoteAddr, forwardedFor string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows requests within the limit", func(t *testing.T) {
		middleware := NewRateLimitMiddleware(5, time.Second)
		handler := middleware(okHandler())

		for i := 0; i < 5; i++ {
			recorder := doRequest(t, handler, "10.0.0.1:1234", "")
			assert.Equal(t, http.StatusOK, recorder.Code, "request %d", i+1)
		}
	})

	t.Run("rejects requests over the limit", func(t *testing.T) {
		middleware := NewRateLimitMiddleware(2, time.Second)
		handler := middleware(okHandler())

		doRequest(t, handler, "10.0.0.1:1234", "")
		doRequest(t, handler, "10.0.0.1:1234", "")
		recorder := doRequest(t, handler, "10.0.0.1:1234", "")

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get("Retry-After"))
		assert.Equal(t, "0", recorder.Header().Get("X-RateLimit-Remaining"))
		assert.Contains(t, recorder.Body.String(), "Rate limit exceeded")
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		middleware := NewRateLimitMiddleware(1, time.Second)
		handler := middleware(okHandler())

		first := doRequest(t, handler, "10.0.0.1:1234", "")
		require.Equal(t, http.StatusOK, first.Code)

		blocked := doRequest(t, handler, "10.0.0.1:5678", "")
		assert.Equal(t, http.StatusTooManyRequests, blocked.Code, "same IP, different port")

		other := doRequest(t, handler, "10.0.0.2:1234", "")
		assert.Equal(t, http.StatusOK, other.Code)
	})

	t.Run("prefers the forwarded-for header", func(t *testing.T) {
		middleware := NewRateLimitMiddleware(1, time.Second)
		handler := middleware(okHandler())

		first := doRequest(t, handler, "10.0.0.1:1234", "203.0.113.7")
		require.Equal(t, http.StatusOK, first.Code)

		blocked := doRequest(t, handler, "10.0.0.9:9999", "203.0.113.7")
		assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	})

	t.Run("negative limit disables limiting", func(t *testing.T) {
		middleware := NewRateLimitMiddleware(-1, time.Second)
		handler := middleware(okHandler())

		for i := 0; i < 50; i++ {
			recorder := doRequest(t, handler, "10.0.0.1:1234", "")
			require.Equal(t, http.StatusOK, recorder.Code)
		}
	})

	t.Run("zero limit blocks everything", func(t *testing.T) {
		middleware := NewRateLimitMiddleware(0, time.Second)
		handler := middleware(okHandler())

		recorder := doRequest(t, handler, "10.0.0.1:1234", "")
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method, route string
	status        int
}

type metricsMock struct {
	observed []observation
}

func (m *metricsMock) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.observed = append(m.observed, observation{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &metricsMock{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/flows/{flowId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/flows/123", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Len(t, m.observed, 2)
	assert.Equal(t, observation{method: "GET", route: "/flows/{flowId}", status: http.StatusNotFound}, m.observed[0])
	assert.Equal(t, observation{method: "GET", route: "/ok", status: http.StatusOK}, m.observed[1])
}

func TestRateLimiter_PerClient(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// Другой клиент не затронут
	assert.True(t, rl.Allow("10.0.0.2"))

	// Через секунду токен восстанавливается
	now = now.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	now = now.Add(time.Minute)
	rl.Allow("10.0.0.2")

	now = now.Add(clientTTL)
	assert.Equal(t, 1, rl.Cleanup())
	assert.Len(t, rl.clients, 1)
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	h := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	post := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/flows", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, post(""))
	assert.Equal(t, http.StatusTooManyRequests, post(""))
	assert.Equal(t, http.StatusNoContent, post("203.0.113.7, 10.0.0.1"))

	// GET не ограничивается
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/flows/1", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"macstock/internal/pkg/middleware"
)

// contadorCache es un cache.Client en memoria con el mismo contrato atómico
// de INCR que Redis.
type contadorCache struct {
	mu       sync.Mutex
	counts   map[string]int64
	expireOn map[string]time.Duration
}

func newContadorCache() *contadorCache {
	return &contadorCache{
		counts:   make(map[string]int64),
		expireOn: make(map[string]time.Duration),
	}
}

func (c *contadorCache) Get(ctx context.Context, key string) (string, error) { return "", nil }

func (c *contadorCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (c *contadorCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

func (c *contadorCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireOn[key] = expiration
	return nil
}

func (c *contadorCache) Delete(ctx context.Context, key string) error { return nil }

func TestRateLimiter_BloqueaSobreElLimite(t *testing.T) {
	cacheClient := newContadorCache()
	limiter := middleware.RateLimiter(cacheClient, 3, time.Minute)

	handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	hacerRequest := func() int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:50000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hacerRequest())
	}
	assert.Equal(t, http.StatusTooManyRequests, hacerRequest())

	// El TTL de la ventana se fija con el primer incremento.
	assert.Equal(t, time.Minute, cacheClient.expireOn["rate-limit:10.0.0.1"])
}

// TestRateLimiter_Concurrente verifica que bajo requests simultáneas nunca
// pase más que el límite: el contador es un solo incremento atómico, no una
// lectura seguida de escritura.
func TestRateLimiter_Concurrente(t *testing.T) {
	cacheClient := newContadorCache()
	limite := 5
	limiter := middleware.RateLimiter(cacheClient, limite, time.Minute)

	var atendidas int64
	handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&atendidas, 1)
		w.WriteHeader(http.StatusOK)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.RemoteAddr = "10.0.0.2:50000"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(limite), atomic.LoadInt64(&atendidas))
}

func TestRateLimiter_IPsIndependientes(t *testing.T) {
	cacheClient := newContadorCache()
	limiter := middleware.RateLimiter(cacheClient, 1, time.Minute)

	handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	hacerRequest := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = ip + ":50000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hacerRequest("10.0.0.3"))
	assert.Equal(t, http.StatusTooManyRequests, hacerRequest("10.0.0.3"))
	// Otra IP tiene su propia ventana.
	assert.Equal(t, http.StatusOK, hacerRequest("10.0.0.4"))
}

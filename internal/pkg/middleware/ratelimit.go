package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"macstock/internal/pkg/cache"
)

// RateLimiter limita la cantidad de requests por IP en una ventana de tiempo,
// usando un contador en Redis. El conteo es un solo INCR atómico: dos
// requests concurrentes de la misma IP nunca leen el mismo valor, así el
// límite se respeta también bajo concurrencia.
func RateLimiter(client cache.Client, limit int, duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, _ := net.SplitHostPort(r.RemoteAddr)
			key := "rate-limit:" + ip
			ctx := context.Background()

			count, err := client.Incr(ctx, key)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			// El primer incremento de la ventana crea la clave: fijarle el TTL.
			if count == 1 {
				client.Expire(ctx, key, duration)
			}

			if count > int64(limit) {
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(limit)-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}

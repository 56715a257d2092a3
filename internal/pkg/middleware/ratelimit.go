package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"gopantry/internal/pkg/cache"
	"gopantry/internal/pkg/logger"
)

// RateLimiter limita cada IP a limit requisições por janela.
// Falhas do cache não bloqueiam a requisição.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip
			ctx := r.Context()

			count, err := client.GetInt(ctx, key)
			switch {
			case errors.Is(err, cache.ErrCacheMiss):
				if err := client.Set(ctx, key, 1, window); err != nil {
					log.Warn("Falha ao iniciar contador de rate limit.", map[string]interface{}{"ip": ip, "error": err.Error()})
				}
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-1))
				next.ServeHTTP(w, r)
				return
			case err != nil:
				log.Warn("Cache indisponível; rate limit ignorado.", map[string]interface{}{"ip": ip, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			if count >= limit {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Limite de requisições excedido.")
				return
			}

			if _, err := client.Incr(ctx, key); err != nil {
				log.Warn("Falha ao incrementar contador de rate limit.", map[string]interface{}{"ip": ip, "error": err.Error()})
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-count-1))
			next.ServeHTTP(w, r)
		})
	}
}

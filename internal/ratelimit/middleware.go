package ratelimit

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
)

// Middleware rejects requests once the client IP exhausts the store's
// window. Mount it behind chi's RealIP middleware so proxied clients are
// keyed correctly. Store errors fail open with a warning.
func Middleware(store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			ok, err := store.Allow(r.Context(), key)
			if err != nil {
				slog.Warn("rate limit check failed", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

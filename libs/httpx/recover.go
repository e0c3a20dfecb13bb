package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
)

// WithRecover turns a panicking handler into a 500 response instead of a
// dropped connection. Nothing below the middleware sees the panic.
func WithRecover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if logger != nil {
						logger.Error("panic in handler",
							"request_id", RequestIDFromContext(r.Context()),
							"path", r.URL.Path,
							"panic", fmt.Sprint(rec),
						)
					}
					http.Error(w, "internal error, please reload", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

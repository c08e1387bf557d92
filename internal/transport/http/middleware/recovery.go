package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"saletracker-api/internal/transport/http/response"
	"saletracker-api/pkg/apierror"
)

// Recovery returns a middleware that recovers from panics. The stack trace
// is logged but never reaches the client.
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
						zap.ByteString("stack", debug.Stack()),
					)
					response.Error(w, apierror.InternalError("Internal server error"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

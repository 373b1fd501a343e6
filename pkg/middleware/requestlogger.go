package middleware

import (
	"log/slog"
	"net/http"

	"github.com/victorverma3/ktpdatabase/pkg/logger"
)

// RequestLogger stores a request-scoped logger, enriched with correlation_id,
// user_id, and trace context, in the request context. Handlers retrieve it
// with logger.FromContext. Mount after RequestLogging so the correlation ID
// is already set.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userID := UserIDFromContext(ctx); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	HeaderXRequestID            = "X-Request-ID"
	RequestIDKey     contextKey = "request_id"
)

// RequestID adds a unique request ID to each request, reusing the caller's
// X-Request-ID when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(HeaderXRequestID)
		if rid == "" {
			rid = uuid.New().String()
		}

		w.Header().Set(HeaderXRequestID, rid)
		ctx := context.WithValue(r.Context(), RequestIDKey, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestIDFromContext(ctx context.Context) string {
	rid, _ := ctx.Value(RequestIDKey).(string)
	return rid
}

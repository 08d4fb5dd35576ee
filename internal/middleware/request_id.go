package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type requestInfoKey struct{}

// requestInfo is shared by pointer so that values discovered deeper in the
// chain (the authenticated user) are visible to the access log.
type requestInfo struct {
	id     string
	userID string
}

// RequestIDMiddleware adds a request ID to the context if not present
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		info := &requestInfo{id: requestID}
		ctx := context.WithValue(r.Context(), requestInfoKey{}, info)

		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request id, empty outside a request.
func RequestIDFromContext(ctx context.Context) string {
	if info, ok := ctx.Value(requestInfoKey{}).(*requestInfo); ok {
		return info.id
	}
	return ""
}

func setRequestUser(ctx context.Context, userID string) {
	if info, ok := ctx.Value(requestInfoKey{}).(*requestInfo); ok {
		info.userID = userID
	}
}

func requestUser(ctx context.Context) string {
	if info, ok := ctx.Value(requestInfoKey{}).(*requestInfo); ok {
		return info.userID
	}
	return ""
}

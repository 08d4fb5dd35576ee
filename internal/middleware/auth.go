package middleware

import (
	"net/http"
	"strings"
	"time"

	"aerocost/api/internal/auth"
	"aerocost/api/internal/common"
	"aerocost/api/internal/constants"
	"aerocost/api/internal/logging"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(tokenString string) (*auth.JWTClaims, error)
}

// AuthMiddleware requires a valid bearer token and stores its claims in the
// request context.
func AuthMiddleware(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(tokenString) == "" {
				common.RespondError(w, initTime, nil, constants.MsgMissingToken, http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(tokenString))
			if err != nil {
				logging.Debug("[Auth] Rejected token",
					"request_id", RequestIDFromContext(r.Context()),
					"error", err,
				)
				common.RespondError(w, initTime, nil, constants.MsgInvalidToken, http.StatusUnauthorized)
				return
			}

			setRequestUser(r.Context(), claims.UserID())
			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

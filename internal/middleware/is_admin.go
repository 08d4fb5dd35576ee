package middleware

import (
	"net/http"
	"time"

	"aerocost/api/internal/auth"
	"aerocost/api/internal/common"
	"aerocost/api/internal/constants"
)

// IsAdminMiddleware must run after AuthMiddleware.
func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondError(w, time.Now(), nil, constants.MsgMissingToken, http.StatusUnauthorized)
				return
			}

			if !claims.IsAdmin() {
				common.RespondError(w, time.Now(), nil, constants.MsgAdminRequired, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

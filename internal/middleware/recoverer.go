package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"aerocost/api/internal/common"
	"aerocost/api/internal/constants"
	"aerocost/api/internal/logging"
)

type panicDetails struct {
	Panic string `json:"panic"`
	Stack string `json:"stack"`
}

// RecovererMiddleware turns a panic into a 500 JSON envelope. The panic
// value and stack are only exposed outside production.
func RecovererMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil || rec == http.ErrAbortHandler {
				if rec != nil {
					panic(rec)
				}
				return
			}

			stack := string(debug.Stack())
			logging.Error("[Recoverer] Panic while serving request",
				"request_id", RequestIDFromContext(r.Context()),
				"panic", fmt.Sprint(rec),
				"stack", stack,
			)

			var details any
			if !logging.IsProduction() {
				details = panicDetails{Panic: fmt.Sprint(rec), Stack: stack}
			}
			common.RespondErrorWithDetails(w, time.Now(), constants.MsgInternalError, details, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

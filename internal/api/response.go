package api

import (
	"net/http"
	"time"

	"aerocost/api/internal/common"
	"aerocost/api/internal/constants"
	"aerocost/api/internal/logging"
	"aerocost/api/internal/middleware"
	"aerocost/api/internal/services"
)

// statusForKind maps a service error kind to its HTTP status.
func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation, services.KindPrecondition:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes the error envelope for err. Errors that are not
// *services.AppError are treated as internal.
func respondServiceError(w http.ResponseWriter, r *http.Request, initTime time.Time, err error) {
	appErr, ok := services.AsAppError(err)
	if !ok {
		appErr = services.NewInternalError(constants.MsgInternalError, err)
	}

	code := statusForKind(appErr.Kind)
	switch {
	case appErr.Kind == services.KindValidation && len(appErr.Details) > 0:
		common.RespondErrorWithDetails(w, initTime, appErr.Message, appErr.Details, code)
	case code == http.StatusInternalServerError:
		logging.Error("[API] Request failed",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		var details any
		if !logging.IsProduction() {
			details = []string{err.Error()}
		}
		common.RespondErrorWithDetails(w, initTime, appErr.Message, details, code)
	default:
		common.RespondError(w, initTime, nil, appErr.Message, code)
	}
}

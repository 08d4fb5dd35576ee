package common

import (
	"encoding/json"
	"net/http"
	"time"

	"aerocost/api/internal/constants"
	"aerocost/api/internal/logging"
	"aerocost/api/internal/models/dtos"
)

// RespondSuccess sends a standardized JSON success response.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusOk),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
	}

	writeJSON(w, code, response)
}

// RespondError sends a standardized JSON error response. A non-nil err
// replaces message as the client-facing text.
func RespondError(w http.ResponseWriter, initTime time.Time, err error, message string, statusCode ...int) {
	code := http.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	msg := message
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	RespondErrorWithDetails(w, initTime, msg, nil, code)
}

// RespondErrorWithDetails sends an error envelope carrying structured details,
// such as per-field validation failures.
func RespondErrorWithDetails(w http.ResponseWriter, initTime time.Time, message string, details any, statusCode int) {
	response := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Error:        message,
		Details:      details,
		ResponseTime: GetResponseTime(initTime),
	}

	writeJSON(w, statusCode, response)
}

func writeJSON(w http.ResponseWriter, code int, body dtos.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err)
	}
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"aerocost/api/internal/constants"
	"aerocost/api/internal/models/dtos"
	"aerocost/api/internal/services"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody reads a JSON body into dst and validates it. Failures come back
// as validation AppErrors carrying per-field details.
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return services.NewValidationError(constants.MsgInvalidBody)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return services.NewValidationError(constants.MsgInvalidBody)
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return services.NewValidationError(constants.MsgValidationFailed, dtos.FieldError{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("must be of type %s", typeErr.Type),
			})
		}
		return services.NewValidationError(constants.MsgInvalidBody, dtos.FieldError{
			Field:   "body",
			Message: err.Error(),
		})
	}
	return validateStruct(dst)
}

// decodeOptionalBody is decodeBody for endpoints where an empty body is
// valid.
func decodeOptionalBody(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return validateStruct(dst)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return services.NewValidationError(constants.MsgInvalidBody, dtos.FieldError{
			Field:   "body",
			Message: err.Error(),
		})
	}
	return validateStruct(dst)
}

func validateStruct(dst interface{}) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return services.NewValidationError(constants.MsgValidationFailed)
	}

	details := make([]dtos.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, dtos.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return services.NewValidationError(constants.MsgValidationFailed, details...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// queryFloat parses an optional non-negative, finite float query parameter.
func queryFloat(r *http.Request, name string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil, services.NewValidationError(constants.MsgInvalidQueryParam, dtos.FieldError{
			Field:   name,
			Message: "must be a non-negative number",
		})
	}
	return &v, nil
}

// queryString returns an optional string query parameter, nil when absent.
func queryString(r *http.Request, name string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	return &raw
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, services.NewValidationError(constants.MsgInvalidQueryParam, dtos.FieldError{
			Field:   name,
			Message: "must be true or false",
		})
	}
	return v, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, services.NewValidationError(constants.MsgInvalidQueryParam, dtos.FieldError{
			Field:   name,
			Message: "must be a non-negative integer",
		})
	}
	return v, nil
}

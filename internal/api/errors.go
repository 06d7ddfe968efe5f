package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MapErrorToStatusCode maps request decoding errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

// GetSafeErrorMessage returns a client-facing description of a request
// decoding error without echoing the request body.
func GetSafeErrorMessage(err error) string {
	var maxBytesErr *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &maxBytesErr):
		return "Request body too large"
	case errors.As(err, &syntaxErr):
		return "Invalid request format"
	case errors.As(err, &typeErr):
		return "Invalid value for field " + typeErr.Field
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return "Unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
	default:
		return "Invalid request format"
	}
}

// missingRequired reports whether err is a validation error caused by at
// least one empty required field.
func missingRequired(err error) bool {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return false
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}

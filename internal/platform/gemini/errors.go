package gemini

import (
	"context"
	"errors"
	"net"

	"github.com/phrazzld/sellwise/internal/generation"
	"google.golang.org/genai"
)

// apiError keeps the service's own message for display while preserving the
// original error for errors.Is and errors.As.
type apiError struct {
	message string
	err     error
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Unwrap() error { return e.err }

// asAPIError extracts a genai.APIError from err. The SDK returns it by value,
// but a pointer is accepted as well.
func asAPIError(err error) (genai.APIError, bool) {
	var value genai.APIError
	if errors.As(err, &value) {
		return value, true
	}
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	return genai.APIError{}, false
}

// kindForStatus maps an HTTP status code returned by the API to a failure kind.
func kindForStatus(code int) generation.FailureKind {
	switch {
	case code == 401, code == 403:
		return generation.FailureAuth
	case code == 429:
		return generation.FailureQuota
	case code == 400, code == 404:
		return generation.FailureInvalidRequest
	case code == 408, code >= 500:
		return generation.FailureTransient
	default:
		return generation.FailureUnknown
	}
}

// classifyError converts an error from the Gemini client into a
// *generation.ServiceError. Errors that cannot be classified are returned
// unchanged so the generation package can apply its own rules.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if apiErr, ok := asAPIError(err); ok {
		message := apiErr.Message
		if message == "" {
			message = err.Error()
		}
		return generation.NewServiceError(kindForStatus(apiErr.Code), &apiError{message: message, err: err})
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return generation.NewServiceError(generation.FailureTransient, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return generation.NewServiceError(generation.FailureTransient, err)
	}

	return err
}

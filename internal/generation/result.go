package generation

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrorPrefix starts the rendered text of every failed result.
const ErrorPrefix = "Gemini API Error: "

// FailureKind classifies why a generation request failed.
type FailureKind string

// Failure kinds
const (
	FailureAuth            FailureKind = "auth"
	FailureQuota           FailureKind = "quota"
	FailureTransient       FailureKind = "transient"
	FailureBlocked         FailureKind = "blocked"
	FailureInvalidResponse FailureKind = "invalid_response"
	FailureInvalidRequest  FailureKind = "invalid_request"
	FailureUnknown         FailureKind = "unknown"
)

// Failure describes a failed generation request.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// Result is the outcome of one generation call: either the generated
// markdown or a Failure, never both.
type Result struct {
	Flow      string
	Model     string
	RequestID uuid.UUID
	Text      string
	Failure   *Failure
}

// OK reports whether the result carries generated text.
func (r Result) OK() bool {
	return r.Failure == nil
}

// Markdown returns the text to render. Generated text is returned exactly as
// the service produced it; a failure renders as ErrorPrefix followed by the
// underlying message.
func (r Result) Markdown() string {
	if r.Failure != nil {
		return ErrorPrefix + r.Failure.Message
	}
	return r.Text
}

// ServiceError is returned by TextGenerator implementations that can classify
// the failure of the underlying service.
type ServiceError struct {
	Kind FailureKind
	Err  error
}

// NewServiceError wraps err with a failure kind.
func NewServiceError(kind FailureKind, err error) *ServiceError {
	return &ServiceError{Kind: kind, Err: err}
}

// Error returns the message of the wrapped error unchanged.
func (e *ServiceError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// KindOf classifies err. A ServiceError anywhere in the chain wins; otherwise
// the package sentinels and context errors are recognized.
func KindOf(err error) FailureKind {
	var serviceErr *ServiceError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &serviceErr):
		return serviceErr.Kind
	case errors.Is(err, ErrContentBlocked):
		return FailureBlocked
	case errors.Is(err, ErrInvalidResponse):
		return FailureInvalidResponse
	case errors.Is(err, ErrUnboundPlaceholder),
		errors.Is(err, ErrUnexpectedArgument),
		errors.Is(err, ErrUnknownTemplate):
		return FailureInvalidRequest
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return FailureTransient
	default:
		return FailureUnknown
	}
}

// NewFailure builds the Failure describing err.
func NewFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	return &Failure{Kind: KindOf(err), Message: err.Error()}
}

package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrInvalidConfig is returned when the generator configuration is invalid,
	// most notably when the API credential is missing.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrInvalidTemplate is returned when a template scaffold does not match its
	// declared placeholders.
	ErrInvalidTemplate = errors.New("invalid prompt template")

	// ErrUnboundPlaceholder is returned when a declared placeholder has no value.
	ErrUnboundPlaceholder = errors.New("unbound placeholder")

	// ErrUnexpectedArgument is returned when a value names no declared placeholder.
	ErrUnexpectedArgument = errors.New("unexpected template argument")

	// ErrUnknownTemplate is returned when a flow name is not registered.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrInvalidResponse is returned when the response carries no usable text
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")
)

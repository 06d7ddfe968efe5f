package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/sellwise/internal/generation"
)

// MaxRequestBodyBytes caps the size of JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// NewValidator returns a validator that knows the enumerated field rules of
// the generation flows and reports fields by their json name.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	for tag, choices := range generation.ChoiceRules() {
		allowed := choices
		// Registration only fails for empty tags or nil functions.
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return slices.Contains(allowed, fl.Field().String())
		})
	}

	return v
}

// Global validator instance for reuse
var validate = NewValidator()

// DecodeJSON decodes the request body into the given struct. Unknown fields
// and trailing data are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// ValidateRequest validates the given struct using the shared validator.
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// ValidationMessages turns a validation error into one readable message per
// failing field. Errors that did not come from the validator are returned as
// a single message.
func ValidationMessages(err error) []string {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	rules := generation.ChoiceRules()
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch {
		case fe.Tag() == "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case rules[fe.Tag()] != nil:
			messages = append(messages, fmt.Sprintf("%s must be one of: %s",
				fe.Field(), strings.Join(rules[fe.Tag()], ", ")))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return messages
}

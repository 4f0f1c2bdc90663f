package core

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// IsValidationError reports whether err (or its cause) is a struct tag or store level validation failure.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return true
	}
	var tagErrs validator.ValidationErrors
	return errors.As(err, &tagErrs)
}

// ValidationMessages flattens a validation failure into {field: message}.
// It returns nil for any other kind of error.
func ValidationMessages(err error) map[string]string {
	var tagErrs validator.ValidationErrors
	if errors.As(err, &tagErrs) {
		msgs := make(map[string]string, len(tagErrs))
		for _, fe := range tagErrs {
			msgs[fe.Field()] = fe.Translate(Translator)
		}
		return msgs
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		msgs := make(map[string]string, len(vErr.Fields))
		for _, fe := range vErr.Fields {
			msgs[fe.Field] = fe.Error
		}
		if len(msgs) == 0 && vErr.Err != nil {
			msgs[""] = vErr.Error()
		}
		return msgs
	}
	return nil
}

// Package validate checks inbound payloads against their `validate` struct
// tags and reports failures as structured field errors.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Kind classifies a field failure
type Kind string

const (
	KindMissing     Kind = "missing"
	KindTooLong     Kind = "too_long"
	KindInvalid     Kind = "invalid"
	KindReferential Kind = "referential"
)

// FieldError describes one rejected field
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Limit   string `json:"limit,omitempty"`
	Message string `json:"message"`
}

// Error is returned when a payload fails validation
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Referential builds the error for a foreign key that points nowhere
func Referential(field string) *Error {
	return &Error{Fields: []FieldError{{
		Field:   field,
		Kind:    KindReferential,
		Message: fmt.Sprintf("%s does not reference an existing record", field),
	}}}
}

// Validator wraps go-playground/validator and satisfies echo.Validator
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports fields by their JSON names
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank also rejects whitespace-only strings
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Validate checks i and returns *Error on any field failure
func (v *Validator) Validate(i interface{}) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, translate(fe))
	}
	return out
}

func translate(fe validator.FieldError) FieldError {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return FieldError{
			Field:   field,
			Kind:    KindMissing,
			Message: fmt.Sprintf("%s is required", field),
		}
	case "max":
		return FieldError{
			Field:   field,
			Kind:    KindTooLong,
			Limit:   fe.Param(),
			Message: fmt.Sprintf("%s must be at most %s characters", field, fe.Param()),
		}
	default:
		return FieldError{
			Field:   field,
			Kind:    KindInvalid,
			Limit:   fe.Param(),
			Message: fmt.Sprintf("%s failed %s check", field, fe.Tag()),
		}
	}
}

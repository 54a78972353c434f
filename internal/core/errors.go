// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrForeignKey   = errors.New("foreign key violation")
	ErrInvalidInput = errors.New("invalid input")
)

// FieldErrors maps a request field to its human readable failures.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

func (f FieldErrors) Fields() []string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// AppError is an error that already knows how it is rendered to the client.
type AppError struct {
	Status  int
	Message string
	Fields  FieldErrors
	Err     error
}

func (e *AppError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf(
			"%s: %s",
			e.Message,
			strings.Join(e.Fields.Fields(), ", "),
		)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func NotFoundError(resource string) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s not found.", resource),
		Err:     ErrNotFound,
	}
}

func BadRequestError(message string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// ValidationError builds the 422 error carrying per-field messages.
func ValidationError(fields FieldErrors) *AppError {
	return &AppError{
		Status:  http.StatusUnprocessableEntity,
		Message: "The given data was invalid.",
		Fields:  fields,
		Err:     ErrInvalidInput,
	}
}

// FieldError is ValidationError for a single field.
func FieldError(field, message string) *AppError {
	fields := FieldErrors{}
	fields.Add(field, message)
	return ValidationError(fields)
}

func DuplicateError(field string) *AppError {
	return FieldError(
		field,
		fmt.Sprintf("The %s has already been taken.", humanize(field)),
	)
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

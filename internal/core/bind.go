// AngelaMos | 2026
// bind.go

package core

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Bind decodes the JSON request body into dst and validates it. An empty
// body decodes as an empty object so that partial updates without fields
// are accepted and creates fail validation instead of parsing.
func Bind(r *http.Request, v *validator.Validate, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return BadRequestError("The request body must be valid JSON.")
	}

	if err := v.Struct(dst); err != nil {
		return ValidationError(ValidationErrors(err))
	}

	return nil
}

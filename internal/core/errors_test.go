// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("find users: %w", NotFoundError("User"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsAppError(err))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "User not found.", appErr.Message)
}

func TestDuplicateError(t *testing.T) {
	err := DuplicateError("postal_code")

	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Equal(t, []string{"The postal code has already been taken."}, err.Fields["postal_code"])
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "The given data was invalid.: postal_code", err.Error())
}

func TestFieldErrors_Fields(t *testing.T) {
	f := FieldErrors{}
	f.Add("name", "a")
	f.Add("email", "b")
	f.Add("name", "c")

	assert.Equal(t, []string{"email", "name"}, f.Fields())
	assert.Len(t, f["name"], 2)
}

func TestIsAppError_PlainError(t *testing.T) {
	assert.False(t, IsAppError(errors.New("boom")))
}

package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesCode(t *testing.T) {
	err := NotFound("Employee not found with id: 7")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, fmt.Errorf("lookup: %w", err), ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestAppError_DomainSentinelsDoNotMatchEachOther(t *testing.T) {
	employeeMissing := New(CodeNotFound, "Employee not found", http.StatusNotFound)
	departmentMissing := New(CodeNotFound, "Department not found", http.StatusNotFound)

	assert.ErrorIs(t, employeeMissing, employeeMissing)
	assert.NotErrorIs(t, employeeMissing, departmentMissing)
	assert.NotErrorIs(t, fmt.Errorf("delete: %w", departmentMissing), employeeMissing)

	assert.ErrorIs(t, employeeMissing, ErrNotFound)
	assert.ErrorIs(t, departmentMissing, ErrNotFound)
	assert.NotErrorIs(t, ErrNotFound, employeeMissing)
}

func TestAppError_Wrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, CodeInternalError, "failed", http.StatusInternalServerError)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed: boom", err.Error())
	assert.Nil(t, Wrap(nil, CodeInternalError, "failed", http.StatusInternalServerError))
}

func TestToHTTP(t *testing.T) {
	got := ToHTTP(NotFound("Employee not found with id: 7"))
	assert.Equal(t, HTTPError{Status: http.StatusNotFound, Code: CodeNotFound, Message: "Employee not found with id: 7"}, got)

	got = ToHTTP(errors.New("pq: password authentication failed"))
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "Internal server error", got.Message)
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Email string `validate:"omitempty,email"`
	}
	v := validator.New()

	err := MapValidationError(v.Struct(payload{}))
	assert.Equal(t, "Name is required", ToHTTP(err).Message)

	err = MapValidationError(v.Struct(payload{Name: "x", Email: "nope"}))
	assert.Equal(t, "Email is invalid", ToHTTP(err).Message)

	err = MapValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, http.StatusBadRequest, ToHTTP(err).Status)
	assert.Equal(t, "Invalid request body", ToHTTP(err).Message)
}

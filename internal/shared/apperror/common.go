package apperror

import "net/http"

var (
	ErrNotFound = newCategory(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrConflict = newCategory(
		CodeConflict,
		"Resource already exists",
		http.StatusConflict,
	)

	ErrInternal = newCategory(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrInvalidInput = newCategory(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

func RequiredField(field string) *AppError {
	return InvalidInput(field + " is required")
}

func InvalidField(field string) *AppError {
	return InvalidInput(field + " is invalid")
}

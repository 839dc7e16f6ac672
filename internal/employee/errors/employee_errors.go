package employeeerrors

import (
	"fmt"
	"go-employee/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrNoEmployeeInDepartment = apperror.New(
		apperror.CodeNotFound,
		"No employee found for this department.",
		http.StatusNotFound,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateOfJoining = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid dateofjoining format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)

func NotFoundWithID(id int64) *apperror.AppError {
	return apperror.NotFound(fmt.Sprintf("Employee not found with id: %d", id))
}

func NotFoundWithLastname(lastname string) *apperror.AppError {
	return apperror.NotFound("Employee not found with lastname: " + lastname)
}

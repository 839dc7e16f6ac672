package employee

import (
	"strings"
	"time"

	employeeerrors "go-employee/internal/employee/errors"
)

// MapToDTO copies a record into its transfer shape. The department is only
// included when the association was loaded.
func MapToDTO(e Employee) EmployeeDTO {
	dto := EmployeeDTO{
		EmployeeID:    e.ID,
		Firstname:     e.Firstname,
		Lastname:      e.Lastname,
		Email:         e.Email,
		PhoneNumber:   e.PhoneNumber,
		JobTitle:      e.JobTitle,
		DateOfJoining: formatDate(e.DateOfJoining),
	}
	switch {
	case e.Department != nil:
		dto.Department = &EmployeeDepartmentDTO{
			DepartmentID: e.Department.ID,
			Name:         e.Department.Name,
		}
	case e.DepartmentID != nil:
		dto.Department = &EmployeeDepartmentDTO{DepartmentID: *e.DepartmentID}
	}
	return dto
}

func MapToDTOs(emps []Employee) []EmployeeDTO {
	res := make([]EmployeeDTO, len(emps))
	for i, e := range emps {
		res[i] = MapToDTO(e)
	}
	return res
}

// mapToEntity builds a new record from dto. The id is never copied so the
// store always generates it.
func mapToEntity(dto EmployeeDTO) (Employee, error) {
	var joined *time.Time
	if dto.DateOfJoining != nil {
		parsed, err := parseDate(*dto.DateOfJoining)
		if err != nil {
			return Employee{}, err
		}
		joined = parsed
	}

	e := Employee{
		Firstname:     dto.Firstname,
		Lastname:      dto.Lastname,
		Email:         dto.Email,
		PhoneNumber:   dto.PhoneNumber,
		JobTitle:      dto.JobTitle,
		DateOfJoining: joined,
	}
	if dto.Department != nil && dto.Department.DepartmentID > 0 {
		id := dto.Department.DepartmentID
		e.DepartmentID = &id
	}
	return e, nil
}

// applyUpdate overwrites only the fields set on dto. A date that does not
// parse leaves e untouched.
func applyUpdate(e *Employee, dto UpdateEmployeeDTO) error {
	var joined *time.Time
	if dto.DateOfJoining != nil {
		parsed, err := parseDate(*dto.DateOfJoining)
		if err != nil {
			return err
		}
		joined = parsed
	}

	if dto.Firstname != nil {
		e.Firstname = *dto.Firstname
	}
	if dto.Lastname != nil {
		e.Lastname = *dto.Lastname
	}
	if dto.Email != nil {
		e.Email = *dto.Email
	}
	if dto.PhoneNumber != nil {
		e.PhoneNumber = *dto.PhoneNumber
	}
	if dto.JobTitle != nil {
		e.JobTitle = *dto.JobTitle
	}
	if dto.DateOfJoining != nil {
		e.DateOfJoining = joined
	}
	if dto.DepartmentID != nil {
		id := *dto.DepartmentID
		e.DepartmentID = &id
		e.Department = nil
	}
	return nil
}

func parseDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDateOfJoining
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(DateLayout)
	return &v
}

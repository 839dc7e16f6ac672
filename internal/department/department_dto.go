package department

import "go-employee/internal/employee"

type CreateDepartmentDTO struct {
	Name string `json:"name" binding:"required,max=255"`
}

// DepartmentDTO lists the department's employees without their nested
// department.
type DepartmentDTO struct {
	DepartmentID int64                  `json:"departmentId"`
	Name         string                 `json:"name"`
	Employees    []employee.EmployeeDTO `json:"employees"`
}

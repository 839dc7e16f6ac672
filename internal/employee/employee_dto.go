package employee

// DateLayout is the wire format of dateofjoining.
const DateLayout = "2006-01-02"

type EmployeeDepartmentDTO struct {
	DepartmentID int64  `json:"departmentId"`
	Name         string `json:"name,omitempty"`
}

type EmployeeDTO struct {
	EmployeeID    int64                  `json:"employeeId"`
	Firstname     string                 `json:"firstname"`
	Lastname      string                 `json:"lastname"`
	Email         string                 `json:"email" binding:"omitempty,email"`
	PhoneNumber   string                 `json:"phonenumber"`
	JobTitle      string                 `json:"jobtitle"`
	DateOfJoining *string                `json:"dateofjoining"`
	Department    *EmployeeDepartmentDTO `json:"department,omitempty"`
}

// UpdateEmployeeDTO carries a partial update: nil fields are left untouched.
type UpdateEmployeeDTO struct {
	Firstname     *string `json:"firstname"`
	Lastname      *string `json:"lastname"`
	Email         *string `json:"email" binding:"omitempty,email"`
	PhoneNumber   *string `json:"phonenumber"`
	JobTitle      *string `json:"jobtitle"`
	DateOfJoining *string `json:"dateofjoining"`
	DepartmentID  *int64  `json:"departmentId" binding:"omitempty,gt=0"`
}

package employee

import "time"

type Employee struct {
	ID            int64       `gorm:"column:employee_id;primaryKey;autoIncrement"`
	Firstname     string      `gorm:"column:firstname"`
	Lastname      string      `gorm:"column:lastname;index"`
	Email         string      `gorm:"column:email"`
	PhoneNumber   string      `gorm:"column:phonenumber"`
	JobTitle      string      `gorm:"column:jobtitle"`
	DateOfJoining *time.Time  `gorm:"column:dateofjoining;type:date"`
	DepartmentID  *int64      `gorm:"column:department_id;index"`
	Department    *Department `gorm:"foreignKey:DepartmentID;references:ID"`
}

func (Employee) TableName() string { return "employees" }

// Department is the read-only side of the belongs-to association. Department
// rows are owned by the department package.
type Department struct {
	ID   int64  `gorm:"column:department_id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (Department) TableName() string { return "department" }

// DepartmentCount is one row of the per-department head count.
type DepartmentCount struct {
	Name  string `gorm:"column:name"`
	Count int64  `gorm:"column:count"`
}

package department

type Department struct {
	ID   int64  `gorm:"column:department_id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;size:255;not null"`
}

func (Department) TableName() string { return "department" }

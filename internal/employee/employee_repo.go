package employee

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UnassignedDepartment groups employees without a department in head counts.
const UnassignedDepartment = "Unassigned"

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	FindByLastname(ctx context.Context, lastname string) (*Employee, error)
	FindByDepartmentID(ctx context.Context, departmentID int64) (*Employee, error)
	FindAllByDepartmentIDs(ctx context.Context, departmentIDs []int64) ([]Employee, error)
	Create(ctx context.Context, empl *Employee) error
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DepartmentExists(ctx context.Context, departmentID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByDepartment(ctx context.Context) ([]DepartmentCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		First(&empl, "employee_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Order("employee_id").
		Find(&empls).Error
	return empls, err
}

// FindByLastname returns the lowest-id match when several employees share
// the last name.
func (r *repository) FindByLastname(ctx context.Context, lastname string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		First(&empl, "lastname = ?", lastname).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// FindByDepartmentID returns the lowest-id employee of the department.
func (r *repository) FindByDepartmentID(ctx context.Context, departmentID int64) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		First(&empl, "department_id = ?", departmentID).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindAllByDepartmentIDs(ctx context.Context, departmentIDs []int64) ([]Employee, error) {
	if len(departmentIDs) == 0 {
		return []Employee{}, nil
	}

	var empls []Employee
	err := r.db.WithContext(ctx).
		Where("department_id IN ?", departmentIDs).
		Order("employee_id").
		Find(&empls).Error
	return empls, err
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(empl).Error
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "employee_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("employee_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DepartmentExists(ctx context.Context, departmentID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Department{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Employee{}).Count(&count).Error
	return count, err
}

// CountByDepartment groups by department name, so two departments sharing a
// name share a bucket.
func (r *repository) CountByDepartment(ctx context.Context) ([]DepartmentCount, error) {
	var counts []DepartmentCount
	err := r.db.WithContext(ctx).Raw(`
SELECT COALESCE(d.name, ?) AS name, COUNT(*) AS count
FROM employees e
LEFT JOIN department d ON d.department_id = e.department_id
GROUP BY 1
ORDER BY 1`,
		UnassignedDepartment,
	).Scan(&counts).Error
	return counts, err
}

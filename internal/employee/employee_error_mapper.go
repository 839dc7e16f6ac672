package employee

import (
	"errors"

	employeeerrors "go-employee/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgForeignKeyViolation = "23503"

// mapRepositoryError translates store errors into application errors.
// Anything unrecognised is returned as is and ends up as a 500.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return employeeerrors.ErrDepartmentNotFound
	}

	return err
}

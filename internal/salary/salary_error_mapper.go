package salary

import (
	"errors"
	"strings"

	salaryerrors "go-personnel/internal/salary/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates storage errors. personnelID names the
// personnel in a duplicate-salary message.
func mapRepositoryError(err error, personnelID string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryerrors.ErrSalaryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_salary_personnel" {
				return salaryerrors.SalaryAlreadyExists(personnelID)
			}
		case "23503":
			return salaryerrors.ErrPersonnelNotFound
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_salary_personnel") {
		return salaryerrors.SalaryAlreadyExists(personnelID)
	}

	return err
}

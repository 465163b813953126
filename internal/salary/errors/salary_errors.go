package salaryerrors

import (
	"errors"
	"fmt"
	"net/http"

	"go-personnel/internal/shared/apperror"
)

// ErrDuplicateSalary is wrapped by every "already exists" error so callers
// can detect it with errors.Is regardless of the personnel id in the message.
var ErrDuplicateSalary = errors.New("salary already exists for personnel")

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary not found",
		http.StatusNotFound,
	)
	ErrPersonnelNotFound = apperror.New(
		apperror.CodeNotFound,
		"Personnel not found",
		http.StatusNotFound,
	)
	ErrInvalidSalaryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary ID",
		http.StatusBadRequest,
	)
	ErrInvalidPersonnelID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid personnel ID",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary_start_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"salary amounts cannot be negative",
		http.StatusBadRequest,
	)

	ErrChildAllowanceNotAllowed = apperror.Validation("Personnel with no children or single cannot have a child allowance.")
)

func SalaryAlreadyExists(personnelID string) error {
	return apperror.Wrap(
		ErrDuplicateSalary,
		apperror.CodeValidation,
		fmt.Sprintf("A salary record for personnel %s already exists.", personnelID),
		http.StatusBadRequest,
	)
}

package personnelerrors

import (
	"net/http"

	"go-personnel/internal/shared/apperror"
)

var (
	ErrPersonnelNotFound = apperror.New(
		apperror.CodeNotFound,
		"Personnel not found",
		http.StatusNotFound,
	)
	ErrPersonnelNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Personnel number already exists in this company",
		http.StatusConflict,
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
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidMaritalStatus = apperror.New(
		apperror.CodeInvalidInput,
		"marital_status must be single or married",
		http.StatusBadRequest,
	)
	ErrInvalidNumberOfChild = apperror.New(
		apperror.CodeInvalidInput,
		"number_of_child cannot be negative",
		http.StatusBadRequest,
	)

	ErrBirthDateInFuture         = apperror.Validation("Birth date cannot be in the future.")
	ErrEmploymentBeforeBirthDate = apperror.Validation("Date of employment cannot be before birth date.")
	ErrEmploymentDateInFuture    = apperror.Validation("Date of employment cannot be in the future.")
)

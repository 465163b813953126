package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-personnel/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and message", func(t *testing.T) {
		err := apperror.Validation("Birth date cannot be in the future.")

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, apperror.CodeValidation, httpErr.Code)
		assert.Equal(t, "Birth date cannot be in the future.", httpErr.Message)
	})

	t.Run("wrapped app error", func(t *testing.T) {
		err := fmt.Errorf("create: %w", apperror.ErrNotFound)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, apperror.CodeNotFound, httpErr.Code)
	})

	t.Run("plain error hides details", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "connection refused")
	})
}

func TestWrap(t *testing.T) {
	inner := errors.New("duplicate")

	assert.Nil(t, apperror.Wrap(nil, apperror.CodeConflict, "x", http.StatusConflict))

	err := apperror.Wrap(inner, apperror.CodeConflict, "already exists", http.StatusConflict)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "already exists: duplicate", err.Error())
}

type bindingPayload struct {
	PhoneNumber string           `json:"phone_number" binding:"required"`
	BaseSalary  *decimal.Decimal `json:"base_salary" binding:"required,min=0"`
}

func TestMapValidationError(t *testing.T) {
	apperror.Init()

	t.Run("required field", func(t *testing.T) {
		amount := decimal.NewFromInt(10)
		err := binding.Validator.ValidateStruct(bindingPayload{BaseSalary: &amount})

		mapped := apperror.MapValidationError(err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(mapped, &appErr))
		assert.Equal(t, "Phone Number is required", appErr.Message)
	})

	t.Run("negative decimal", func(t *testing.T) {
		amount := decimal.NewFromInt(-1)
		err := binding.Validator.ValidateStruct(bindingPayload{PhoneNumber: "0812", BaseSalary: &amount})

		mapped := apperror.MapValidationError(err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(mapped, &appErr))
		assert.Equal(t, "Base Salary is invalid", appErr.Message)
	})

	t.Run("zero decimal is present", func(t *testing.T) {
		amount := decimal.Zero
		err := binding.Validator.ValidateStruct(bindingPayload{PhoneNumber: "0812", BaseSalary: &amount})

		assert.NoError(t, err)
	})

	t.Run("non validator error", func(t *testing.T) {
		mapped := apperror.MapValidationError(errors.New("unexpected EOF"))

		assert.Equal(t, "Invalid input", mapped.(*apperror.AppError).Message)
	})
}

func TestWithDetails(t *testing.T) {
	err := apperror.ErrForbidden.WithDetails(map[string]string{"required": "salary:read"})

	httpErr := apperror.ToHTTP(err)

	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.Equal(t, map[string]string{"required": "salary:read"}, httpErr.Details)
	assert.Nil(t, apperror.ErrForbidden.Details)
}

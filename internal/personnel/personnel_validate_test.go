package personnel_test

import (
	"testing"
	"time"

	"go-personnel/internal/personnel"
	personnelerrors "go-personnel/internal/personnel/errors"
	"go-personnel/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateDates(t *testing.T) {
	today := date(2024, time.June, 1)

	tests := []struct {
		name       string
		birth      time.Time
		employment time.Time
		wantErr    error
	}{
		{"valid record", date(1990, time.May, 1), date(2020, time.January, 15), nil},
		{"employment today", date(1990, time.May, 1), today, nil},
		{"employment on birth date", date(1990, time.May, 1), date(1990, time.May, 1), nil},
		{"birth date in the future", date(2030, time.January, 1), date(2031, time.January, 1), personnelerrors.ErrBirthDateInFuture},
		{"employment before birth", date(1990, time.May, 1), date(1985, time.January, 1), personnelerrors.ErrEmploymentBeforeBirthDate},
		{"employment in the future", date(1990, time.May, 1), date(2030, time.January, 1), personnelerrors.ErrEmploymentDateInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := personnel.ValidateDates(tt.birth, tt.employment, today)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateDates_Messages(t *testing.T) {
	today := date(2024, time.June, 1)

	err := personnel.ValidateDates(date(2030, time.January, 1), date(2031, time.January, 1), today)
	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, apperror.CodeValidation, httpErr.Code)
	assert.Equal(t, "Birth date cannot be in the future.", httpErr.Message)

	err = personnel.ValidateDates(date(1990, time.May, 1), date(1985, time.January, 1), today)
	assert.Equal(t, "Date of employment cannot be before birth date.", apperror.ToHTTP(err).Message)

	err = personnel.ValidateDates(date(1990, time.May, 1), date(2030, time.January, 1), today)
	assert.Equal(t, "Date of employment cannot be in the future.", apperror.ToHTTP(err).Message)
}

func TestValidateDates_IgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	employedLaterToday := time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC)

	err := personnel.ValidateDates(date(1990, time.May, 1), employedLaterToday, today)
	assert.NoError(t, err)
}

func TestValidateDates_FailFastOrder(t *testing.T) {
	today := date(2024, time.June, 1)

	// Birth in the future and employment before birth: the birth rule wins.
	err := personnel.ValidateDates(date(2030, time.January, 1), date(2029, time.January, 1), today)
	assert.ErrorIs(t, err, personnelerrors.ErrBirthDateInFuture)
}

func TestParseMaritalStatus(t *testing.T) {
	status, err := personnel.ParseMaritalStatus(" Married ")
	assert.NoError(t, err)
	assert.Equal(t, personnel.MaritalStatusMarried, status)

	status, err = personnel.ParseMaritalStatus("single")
	assert.NoError(t, err)
	assert.Equal(t, personnel.MaritalStatusSingle, status)

	_, err = personnel.ParseMaritalStatus("divorced")
	assert.ErrorIs(t, err, personnelerrors.ErrInvalidMaritalStatus)
}

package personnel

import (
	"strings"
	"time"

	personnelerrors "go-personnel/internal/personnel/errors"
)

const dateLayout = "2006-01-02"

// ValidateDates checks a personnel record's dates against today, comparing
// calendar dates only. The first failing rule is returned.
func ValidateDates(birthDate, dateOfEmployment, today time.Time) error {
	today = calendarDate(today)
	birth := calendarDate(birthDate)
	employed := calendarDate(dateOfEmployment)

	if birth.After(today) {
		return personnelerrors.ErrBirthDateInFuture
	}
	if employed.Before(birth) {
		return personnelerrors.ErrEmploymentBeforeBirthDate
	}
	if employed.After(today) {
		return personnelerrors.ErrEmploymentDateInFuture
	}
	return nil
}

func ParseMaritalStatus(v string) (MaritalStatus, error) {
	switch MaritalStatus(strings.ToLower(strings.TrimSpace(v))) {
	case MaritalStatusSingle:
		return MaritalStatusSingle, nil
	case MaritalStatusMarried:
		return MaritalStatusMarried, nil
	default:
		return "", personnelerrors.ErrInvalidMaritalStatus
	}
}

type personnelInput struct {
	birthDate        time.Time
	dateOfEmployment time.Time
	maritalStatus    MaritalStatus
	numberOfChild    *int
}

func parseRequest(req CreatePersonnelRequest, today time.Time) (personnelInput, error) {
	birthDate, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		return personnelInput{}, personnelerrors.ErrInvalidDateFormat
	}
	dateOfEmployment, err := time.Parse(dateLayout, req.DateOfEmployment)
	if err != nil {
		return personnelInput{}, personnelerrors.ErrInvalidDateFormat
	}
	status, err := ParseMaritalStatus(req.MaritalStatus)
	if err != nil {
		return personnelInput{}, err
	}
	if req.NumberOfChild != nil && *req.NumberOfChild < 0 {
		return personnelInput{}, personnelerrors.ErrInvalidNumberOfChild
	}
	if err := ValidateDates(birthDate, dateOfEmployment, today); err != nil {
		return personnelInput{}, err
	}

	return personnelInput{
		birthDate:        birthDate,
		dateOfEmployment: dateOfEmployment,
		maritalStatus:    status,
		numberOfChild:    req.NumberOfChild,
	}, nil
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

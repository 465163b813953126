package salary

import (
	"context"
	"errors"
	"strings"

	salaryerrors "go-personnel/internal/salary/errors"

	"gorm.io/gorm"
)

// PersonnelLookup is the read access salary validation needs.
type PersonnelLookup interface {
	FindPersonnel(ctx context.Context, companyID, personnelID string) (*SalaryPersonnel, error)
	ExistsForPersonnel(ctx context.Context, personnelID string) (bool, error)
}

// Validate checks candidate against the salary rules. existing is the stored
// record being updated, or nil on create.
func Validate(ctx context.Context, lookup PersonnelLookup, candidate *Salary, existing *Salary) error {
	_, err := validate(ctx, lookup, candidate, existing)
	return err
}

func validate(ctx context.Context, lookup PersonnelLookup, candidate *Salary, existing *Salary) (*SalaryPersonnel, error) {
	personnelID := candidate.PersonnelID.String()

	p, err := lookup.FindPersonnel(ctx, candidate.CompanyID.String(), personnelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, salaryerrors.ErrPersonnelNotFound
		}
		return nil, err
	}

	if !childAllowanceAllowed(p) && candidate.ChildAllowance != nil && !candidate.ChildAllowance.IsZero() {
		return nil, salaryerrors.ErrChildAllowanceNotAllowed
	}

	if existing != nil && existing.PersonnelID == candidate.PersonnelID {
		return p, nil
	}

	exists, err := lookup.ExistsForPersonnel(ctx, personnelID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, salaryerrors.SalaryAlreadyExists(personnelID)
	}

	return p, nil
}

func childAllowanceAllowed(p *SalaryPersonnel) bool {
	return strings.EqualFold(strings.TrimSpace(p.MaritalStatus), "married") &&
		p.NumberOfChild != nil && *p.NumberOfChild > 0
}

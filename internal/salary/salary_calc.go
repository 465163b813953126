package salary

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Deductions is the withholding schedule applied to a gross salary.
type Deductions struct {
	InsuranceRate decimal.Decimal
	TaxRate       decimal.Decimal
	TaxExemption  decimal.Decimal
}

var DefaultDeductions = Deductions{
	InsuranceRate: decimal.RequireFromString("0.07"),
	TaxRate:       decimal.RequireFromString("0.10"),
	TaxExemption:  decimal.Zero,
}

type Breakdown struct {
	Gross     decimal.Decimal
	Insurance decimal.Decimal
	Tax       decimal.Decimal
	Net       decimal.Decimal
}

// GrossSalary sums base pay and allowances. The child allowance is paid per
// child and only to married personnel with at least one child; absent
// allowances count as zero.
func GrossSalary(
	base decimal.Decimal,
	housing, child, food *decimal.Decimal,
	numberOfChild *int,
	maritalStatus string,
) decimal.Decimal {
	gross := base.Add(orZero(housing)).Add(orZero(food))

	if strings.EqualFold(strings.TrimSpace(maritalStatus), "married") && numberOfChild != nil && *numberOfChild > 0 {
		gross = gross.Add(orZero(child).Mul(decimal.NewFromInt(int64(*numberOfChild))))
	}

	return gross.Round(2)
}

// NetSalary applies DefaultDeductions to gross.
func NetSalary(gross decimal.Decimal) decimal.Decimal {
	return DefaultDeductions.Apply(gross).Net
}

// Apply splits gross into insurance, income tax and net pay. Insurance is
// taken first; tax is charged on what remains above the exemption. Net pay is
// never negative.
func (d Deductions) Apply(gross decimal.Decimal) Breakdown {
	gross = gross.Round(2)
	insurance := gross.Mul(d.InsuranceRate).Round(2)

	taxable := gross.Sub(insurance).Sub(d.TaxExemption)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	tax := taxable.Mul(d.TaxRate).Round(2)

	net := gross.Sub(insurance).Sub(tax)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return Breakdown{
		Gross:     gross,
		Insurance: insurance,
		Tax:       tax,
		Net:       net.Round(2),
	}
}

func orZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

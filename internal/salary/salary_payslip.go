package salary

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Core PDF fonts are cp1252 only; DejaVu covers Latin, Cyrillic and Arabic script names.
const payslipFont = "DejaVu"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	payslipFontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	payslipFontBold []byte
)

type Payslip struct {
	Filename string
	Content  []byte
}

func renderPayslip(rec Salary, b Breakdown, issuedAt time.Time) (Payslip, error) {
	name := "-"
	number := rec.PersonnelID.String()
	if rec.Personnel != nil {
		name = rec.Personnel.Firstname + " " + rec.Personnel.Lastname
		number = rec.Personnel.NumberOfPersonnel
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(payslipFont, "", payslipFontRegular)
	pdf.AddUTF8FontFromBytes(payslipFont, "B", payslipFontBold)
	pdf.AddPage()
	pdf.SetFont(payslipFont, "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont(payslipFont, "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Personnel: %s (%s)", name, number))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Salary start date: %s", rec.SalaryStartDate.Format(dateLayout)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Issued: %s", issuedAt.Format(dateLayout)))
	pdf.Ln(10)

	line := func(label string, amount decimal.Decimal) {
		pdf.CellFormat(100, 8, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont(payslipFont, "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont(payslipFont, "", 12)
	line("Base salary", rec.BaseSalary)
	line("Housing allowance", orZero(rec.HousingAllowance))
	line("Child allowance", b.Gross.Sub(rec.BaseSalary).Sub(orZero(rec.HousingAllowance)).Sub(orZero(rec.FoodAllowance)))
	line("Food allowance", orZero(rec.FoodAllowance))
	line("Gross salary", b.Gross)
	pdf.Ln(4)

	pdf.SetFont(payslipFont, "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont(payslipFont, "", 12)
	line("Insurance", b.Insurance)
	line("Income tax", b.Tax)
	pdf.Ln(4)

	pdf.SetFont(payslipFont, "B", 12)
	line("Net salary", b.Net)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Payslip{}, err
	}

	return Payslip{
		Filename: fmt.Sprintf("payslip-%s.pdf", number),
		Content:  buf.Bytes(),
	}, nil
}

package salary

import "github.com/shopspring/decimal"

// Amounts accept JSON strings or numbers and are always rendered as strings.
type CreateSalaryRequest struct {
	Personnel        string           `json:"personnel" binding:"required,uuid"`
	BaseSalary       *decimal.Decimal `json:"base_salary" binding:"required,min=0"`
	HousingAllowance *decimal.Decimal `json:"housing_allowance" binding:"omitempty,min=0"`
	ChildAllowance   *decimal.Decimal `json:"child_allowance" binding:"omitempty,min=0"`
	FoodAllowance    *decimal.Decimal `json:"food_allowance" binding:"omitempty,min=0"`
	SalaryStartDate  string           `json:"salary_start_date" binding:"required"`
}

type UpdateSalaryRequest CreateSalaryRequest

type PersonnelDetail struct {
	NumberOfPersonnel string `json:"number_of_personnel"`
	Firstname         string `json:"firstname"`
	Lastname          string `json:"lastname"`
}

type SalaryResponse struct {
	UserID           string           `json:"user_id"`
	PersonnelDetail  *PersonnelDetail `json:"personnel_detail"`
	BaseSalary       decimal.Decimal  `json:"base_salary"`
	HousingAllowance *decimal.Decimal `json:"housing_allowance"`
	ChildAllowance   *decimal.Decimal `json:"child_allowance"`
	FoodAllowance    *decimal.Decimal `json:"food_allowance"`
	SalaryStartDate  string           `json:"salary_start_date"`
	GrossSalary      decimal.Decimal  `json:"gross_salary"`
	NetSalary        decimal.Decimal  `json:"net_salary"`
	CreatedAt        string           `json:"created_at"`
	UpdateAt         string           `json:"update_at"`
}

package salary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Salary struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	PersonnelID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_salary_personnel"`
	BaseSalary       decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	HousingAllowance *decimal.Decimal `gorm:"type:numeric(14,2)"`
	ChildAllowance   *decimal.Decimal `gorm:"type:numeric(14,2)"`
	FoodAllowance    *decimal.Decimal `gorm:"type:numeric(14,2)"`
	SalaryStartDate  time.Time        `gorm:"type:date;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Personnel *SalaryPersonnel `gorm:"foreignKey:PersonnelID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Salary) TableName() string {
	return "salaries"
}

// SalaryPersonnel is the read-only slice of a personnel row salary rules need.
type SalaryPersonnel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID         uuid.UUID `gorm:"type:uuid"`
	NumberOfPersonnel string
	Firstname         string
	Lastname          string
	MaritalStatus     string
	NumberOfChild     *int
	DeletedAt         gorm.DeletedAt
}

func (SalaryPersonnel) TableName() string {
	return "personnel"
}

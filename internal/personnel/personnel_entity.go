package personnel

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaritalStatus string

const (
	MaritalStatusSingle  MaritalStatus = "single"
	MaritalStatusMarried MaritalStatus = "married"
)

type Personnel struct {
	ID                uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CompanyID         uuid.UUID     `gorm:"type:uuid;not null;index;uniqueIndex:uq_personnel_number,priority:1"`
	NumberOfPersonnel string        `gorm:"type:varchar(20);not null;uniqueIndex:uq_personnel_number,priority:2"`
	Firstname         string        `gorm:"type:varchar(100);not null"`
	Lastname          string        `gorm:"type:varchar(100);not null"`
	PhoneNumber       string        `gorm:"type:varchar(20)"`
	BirthDate         time.Time     `gorm:"type:date;not null"`
	Degree            string        `gorm:"type:varchar(100)"`
	FieldOfStudy      string        `gorm:"type:varchar(100)"`
	CareerRecords     string        `gorm:"type:text"`
	Position          string        `gorm:"type:varchar(100)"`
	LevelForPosition  string        `gorm:"type:varchar(50)"`
	DateOfEmployment  time.Time     `gorm:"type:date;not null"`
	MaritalStatus     MaritalStatus `gorm:"type:varchar(10);not null;default:'single'"`
	NumberOfChild     *int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Personnel) TableName() string {
	return "personnel"
}
